package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
)

// Bridge relays hub changes between service instances through a topic exchange.
// The routing key is the collection name.
type Bridge struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	origin   string
	hub      *Hub
}

func NewBridge(url, exchange, queue string, hub *Hub) (*Bridge, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	// An empty name yields a server-named queue private to this instance.
	exclusive := queue == ""
	q, err := ch.QueueDeclare(queue, !exclusive, exclusive, exclusive, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}
	for _, rk := range []string{CollectionTimeSlots, CollectionReservations} {
		if err := ch.QueueBind(q.Name, rk, exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("bind %s: %w", rk, err)
		}
	}

	b := &Bridge{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		queue:    q.Name,
		origin:   uuid.NewString(),
		hub:      hub,
	}
	hub.SetForwarder(b.Forward)
	return b, nil
}

// Forward publishes a locally originated change. Failures are logged; local
// subscribers have already been notified.
func (b *Bridge) Forward(ctx context.Context, c Change) {
	if c.Origin != "" {
		return
	}
	body, err := encodeChange(c, b.origin)
	if err != nil {
		logger.Error("encode change", "error", err)
		return
	}
	err = b.ch.PublishWithContext(ctx, b.exchange, c.Collection, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logger.Error("publish change", "collection", c.Collection, "id", c.ID, "error", err)
	}
}

// Run consumes remote changes into the hub until ctx is done.
func (b *Bridge) Run(ctx context.Context) error {
	deliveries, err := b.ch.ConsumeWithContext(ctx, b.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", b.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			b.handle(d)
		}
	}
}

func (b *Bridge) handle(d amqp.Delivery) {
	c, ok := decodeChange(d.Body, b.origin)
	if ok {
		b.hub.Dispatch(c)
	}
	if d.Acknowledger != nil {
		_ = d.Ack(false)
	}
}

func (b *Bridge) Close() error {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

func encodeChange(c Change, origin string) ([]byte, error) {
	c.Origin = origin
	return json.Marshal(c)
}

// decodeChange parses a remote change, dropping malformed messages and our own echoes.
func decodeChange(body []byte, self string) (Change, bool) {
	var c Change
	if err := json.Unmarshal(body, &c); err != nil {
		logger.Warn("drop malformed change", "error", err)
		return Change{}, false
	}
	if c.Origin == self || c.Collection == "" {
		return Change{}, false
	}
	return c, true
}
