package reservation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

// MemoryRepository keeps reservations in process and shares a slot memory
// store so that creation and confirmation stay atomic. Locks are always taken
// reservation first, then slot.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]Reservation
	slots *slot.MemoryRepository
	now   func() time.Time
}

func NewMemoryRepository(slots *slot.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]Reservation),
		slots: slots,
		now:   time.Now,
	}
}

func (r *MemoryRepository) CreateIfAvailable(_ context.Context, a Approval) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := a.Reservation
	var out Reservation
	err := r.slots.Atomic(func(tx *slot.MemoryTx) error {
		if a.Token.SlotDefinitionID != "" {
			s, ok := tx.Get(a.Token.SlotDefinitionID)
			if !ok || !s.IsActive {
				return ErrSlotUnavailable
			}
			if s.Version != a.Token.SlotVersion {
				return ErrApprovalStale
			}
		}
		if r.confirmedOverlap(res) {
			return ErrSlotUnavailable
		}
		for _, o := range r.items {
			if o.Status != StatusCancelled && o.RequesterID == res.RequesterID &&
				o.FacilityID == res.FacilityID && o.Date == res.Date && o.Window() == res.Window() {
				return ErrDuplicateReservation
			}
		}

		out = res
		out.CreatedAt = r.now()
		out.UpdatedAt = out.CreatedAt
		r.items[out.ID] = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return &res, nil
}

func (r *MemoryRepository) List(_ context.Context, f Filter) ([]Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Reservation{}
	for _, res := range r.items {
		if f.Match(res) {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) TransitionStatus(_ context.Context, id string, from, to Status) (*Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	if res.Status != from {
		return nil, ErrStatusConflict
	}

	res.Status = to
	res.UpdatedAt = r.now()
	r.items[id] = res
	return &res, nil
}

func (r *MemoryRepository) Confirm(_ context.Context, id string) (*ConfirmOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	if res.Status != StatusPending {
		return nil, ErrStatusConflict
	}

	outcome := &ConfirmOutcome{Legacy: res.SlotDefinitionID == ""}
	err := r.slots.Atomic(func(tx *slot.MemoryTx) error {
		// Check everything before mutating so a failure leaves both stores untouched.
		if !outcome.Legacy {
			s, ok := tx.Get(res.SlotDefinitionID)
			if !ok || !res.SlotMatch().Matches(s) {
				return ErrSlotDefinitionNotFoundOnConfirm
			}
		}
		if r.confirmedOverlap(res) {
			return ErrSlotUnavailable
		}

		if outcome.Legacy {
			outcome.DeletedSlotID, outcome.Matches = tx.DeleteFirstMatching(res.SlotMatch())
		} else {
			tx.DeleteIfMatches(res.SlotDefinitionID, res.SlotMatch())
			outcome.DeletedSlotID = res.SlotDefinitionID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Status = StatusConfirmed
	res.UpdatedAt = r.now()
	r.items[id] = res
	outcome.Reservation = res
	return outcome, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrReservationNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) confirmedOverlap(res Reservation) bool {
	for id, o := range r.items {
		if id == res.ID || !o.Status.Blocks() {
			continue
		}
		if o.FacilityID == res.FacilityID && o.Date == res.Date && o.Window().Overlaps(res.Window()) {
			return true
		}
	}
	return false
}
