package notify

import (
	"context"
	"sync"
)

type Handler func(Change)

// Forwarder receives every locally published change, e.g. to relay it to other instances.
type Forwarder func(ctx context.Context, c Change)

// Hub dispatches changes to in-process subscribers.
type Hub struct {
	mu        sync.RWMutex
	subs      map[string]map[int]Handler
	nextID    int
	forwarder Forwarder
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]Handler)}
}

// Subscribe registers fn for changes to collection and returns its unsubscribe func.
func (h *Hub) Subscribe(collection string, fn Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]Handler)
	}
	id := h.nextID
	h.nextID++
	h.subs[collection][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[collection], id)
		})
	}
}

func (h *Hub) SetForwarder(f Forwarder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forwarder = f
}

// Publish dispatches c locally and hands it to the forwarder, if any.
func (h *Hub) Publish(ctx context.Context, c Change) {
	h.Dispatch(c)

	h.mu.RLock()
	f := h.forwarder
	h.mu.RUnlock()
	if f != nil {
		f(ctx, c)
	}
}

// Dispatch delivers c to local subscribers only. Handlers run synchronously.
func (h *Hub) Dispatch(c Change) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[c.Collection]))
	for _, fn := range h.subs[c.Collection] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(c)
	}
}
