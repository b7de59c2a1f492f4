package reservation

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/CamiloTriana75/ProyectoElden/internal/auth"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/metrics"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
	"github.com/CamiloTriana75/ProyectoElden/internal/review"
)

var tracer = otel.Tracer("github.com/CamiloTriana75/ProyectoElden/internal/reservation")

// Flagger queues an inconsistency for administrator review.
type Flagger interface {
	Flag(ctx context.Context, item review.Inconsistency) error
}

type noopFlagger struct{}

func (noopFlagger) Flag(context.Context, review.Inconsistency) error { return nil }

// Manager owns the reservation state machine and its side effects.
type Manager interface {
	UpdateStatus(ctx context.Context, actor auth.Actor, id string, to Status) (*Reservation, error)
	Cancel(ctx context.Context, actor auth.Actor, id string) (*Reservation, error)
	Get(ctx context.Context, actor auth.Actor, id string) (*Reservation, error)
	ListForRequester(ctx context.Context, requesterID string) ([]Reservation, error)
	List(ctx context.Context, f Filter) ([]Reservation, error)
	Delete(ctx context.Context, id string) error
}

type manager struct {
	repo      Repository
	publisher notify.Publisher
	flagger   Flagger
}

func NewManager(repo Repository, publisher notify.Publisher, flagger Flagger) Manager {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	if flagger == nil {
		flagger = noopFlagger{}
	}
	return &manager{
		repo:      repo,
		publisher: publisher,
		flagger:   flagger,
	}
}

func (m *manager) UpdateStatus(ctx context.Context, actor auth.Actor, id string, to Status) (*Reservation, error) {
	ctx, span := tracer.Start(ctx, "reservation.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("reservation.id", id), attribute.String("reservation.to", string(to)))

	res, err := m.updateStatus(ctx, actor, id, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return res, err
}

func (m *manager) updateStatus(ctx context.Context, actor auth.Actor, id string, to Status) (*Reservation, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}

	cur, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorize(actor, *cur, to); err != nil {
		return nil, err
	}
	if !cur.Status.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, cur.Status, to)
	}

	var updated *Reservation
	if to == StatusConfirmed {
		updated, err = m.confirm(ctx, *cur)
	} else {
		updated, err = m.repo.TransitionStatus(ctx, id, cur.Status, to)
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordTransition(string(cur.Status), string(to))
	logger.Info("reservation status changed",
		"reservation_id", id, "from", cur.Status, "to", to, "actor_id", actor.ID)
	m.publish(ctx, notify.OpUpdated, *updated)
	return updated, nil
}

func (m *manager) confirm(ctx context.Context, cur Reservation) (*Reservation, error) {
	outcome, err := m.repo.Confirm(ctx, cur.ID)
	if err != nil {
		if errors.Is(err, ErrSlotDefinitionNotFoundOnConfirm) {
			logger.Warn("slot definition already consumed",
				"reservation_id", cur.ID, "slot_definition_id", cur.SlotDefinitionID,
				"facility_id", cur.FacilityID, "date", cur.Date)
		}
		return nil, err
	}

	if outcome.DeletedSlotID != "" {
		metrics.RecordSlotConsumed()
		m.publisher.Publish(ctx, notify.Change{
			Collection: notify.CollectionTimeSlots,
			Op:         notify.OpDeleted,
			ID:         outcome.DeletedSlotID,
			FacilityID: cur.FacilityID,
			Date:       cur.Date,
		})
	}

	if outcome.Legacy && outcome.Matches != 1 {
		m.reportInconsistency(ctx, cur, outcome)
	}

	return &outcome.Reservation, nil
}

// reportInconsistency never fails the confirmation it was raised from.
func (m *manager) reportInconsistency(ctx context.Context, res Reservation, outcome *ConfirmOutcome) {
	kind := review.KindNoMatch
	if outcome.Matches > 1 {
		kind = review.KindMultipleMatches
	}

	logger.Warn("slot definition match inconsistency on confirm",
		"reservation_id", res.ID, "facility_id", res.FacilityID, "date", res.Date,
		"start_time", res.StartTime, "end_time", res.EndTime,
		"kind", kind, "matches", outcome.Matches, "deleted_slot_id", outcome.DeletedSlotID)
	metrics.RecordInconsistency(kind)

	err := m.flagger.Flag(ctx, review.Inconsistency{
		ReservationID: res.ID,
		FacilityID:    res.FacilityID,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		Kind:          kind,
		Matches:       outcome.Matches,
		DeletedSlotID: outcome.DeletedSlotID,
	})
	if err != nil {
		logger.Error("failed to queue inconsistency", "reservation_id", res.ID, "error", err)
	}
}

func (m *manager) Cancel(ctx context.Context, actor auth.Actor, id string) (*Reservation, error) {
	return m.UpdateStatus(ctx, actor, id, StatusCancelled)
}

func (m *manager) Get(ctx context.Context, actor auth.Actor, id string) (*Reservation, error) {
	res, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && res.RequesterID != actor.ID {
		return nil, ErrForbidden
	}
	return res, nil
}

func (m *manager) ListForRequester(ctx context.Context, requesterID string) ([]Reservation, error) {
	return m.repo.List(ctx, Filter{RequesterID: requesterID})
}

func (m *manager) List(ctx context.Context, f Filter) ([]Reservation, error) {
	return m.repo.List(ctx, f)
}

func (m *manager) Delete(ctx context.Context, id string) error {
	cur, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := m.repo.Delete(ctx, id); err != nil {
		return err
	}

	m.publish(ctx, notify.OpDeleted, *cur)
	return nil
}

func (m *manager) publish(ctx context.Context, op notify.Op, res Reservation) {
	m.publisher.Publish(ctx, notify.Change{
		Collection: notify.CollectionReservations,
		Op:         op,
		ID:         res.ID,
		FacilityID: res.FacilityID,
		Date:       res.Date,
	})
}

// authorize applies the ownership rules: only staff confirm, and requesters
// may cancel their own reservations.
func authorize(actor auth.Actor, res Reservation, to Status) error {
	if actor.IsStaff() {
		return nil
	}
	if to == StatusCancelled && actor.ID != "" && actor.ID == res.RequesterID {
		return nil
	}
	return ErrForbidden
}
