package slot

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps slot definitions in process. It enforces the same
// active-window uniqueness the time_slots table does.
type MemoryRepository struct {
	mu    sync.Mutex
	slots map[string]SlotDefinition
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{slots: make(map[string]SlotDefinition), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, s *SlotDefinition) (*SlotDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conflicts(*s) {
		return nil, ErrSlotDuplicate
	}

	out := *s
	out.Version = 1
	out.CreatedAt = r.now()
	out.UpdatedAt = out.CreatedAt
	r.slots[out.ID] = out
	return &out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*SlotDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) List(_ context.Context, f Filter) ([]SlotDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []SlotDefinition{}
	for _, s := range r.slots {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	sortSlots(out)
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, s *SlotDefinition) (*SlotDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.slots[s.ID]
	if !ok {
		return nil, ErrSlotNotFound
	}
	if cur.Version != s.Version {
		return nil, ErrSlotModified
	}
	if r.conflicts(*s) {
		return nil, ErrSlotDuplicate
	}

	out := *s
	out.FacilityID = cur.FacilityID
	out.CreatedAt = cur.CreatedAt
	out.Version = cur.Version + 1
	out.UpdatedAt = r.now()
	r.slots[out.ID] = out
	return &out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[id]; !ok {
		return ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

// Atomic runs fn while holding the repository lock so that callers can
// combine slot reads and deletions with their own state changes.
func (r *MemoryRepository) Atomic(fn func(tx *MemoryTx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&MemoryTx{r: r})
}

// MemoryTx is only valid inside Atomic.
type MemoryTx struct {
	r *MemoryRepository
}

func (tx *MemoryTx) Get(id string) (SlotDefinition, bool) {
	s, ok := tx.r.slots[id]
	return s, ok
}

func (tx *MemoryTx) Find(m Match) []SlotDefinition {
	var out []SlotDefinition
	for _, s := range tx.r.slots {
		if m.Matches(s) {
			out = append(out, s)
		}
	}
	sortSlots(out)
	return out
}

func (tx *MemoryTx) Remove(id string) {
	delete(tx.r.slots, id)
}

func (r *MemoryRepository) conflicts(s SlotDefinition) bool {
	if !s.IsActive {
		return false
	}
	for id, o := range r.slots {
		if id == s.ID || !o.IsActive {
			continue
		}
		if o.FacilityID == s.FacilityID && o.Window() == s.Window() && o.SameApplicability(s) {
			return true
		}
	}
	return false
}

func sortSlots(slots []SlotDefinition) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].StartTime != slots[j].StartTime {
			return slots[i].StartTime < slots[j].StartTime
		}
		if slots[i].EndTime != slots[j].EndTime {
			return slots[i].EndTime < slots[j].EndTime
		}
		return slots[i].ID < slots[j].ID
	})
}

// DeleteIfMatches is the in-memory counterpart of the package-level DeleteIfMatches.
func (tx *MemoryTx) DeleteIfMatches(id string, m Match) bool {
	s, ok := tx.r.slots[id]
	if !ok || !m.Matches(s) {
		return false
	}
	delete(tx.r.slots, id)
	return true
}

// DeleteFirstMatching removes the oldest definition matching m.
func (tx *MemoryTx) DeleteFirstMatching(m Match) (deletedID string, matches int) {
	var found []SlotDefinition
	for _, s := range tx.r.slots {
		if m.Matches(s) {
			found = append(found, s)
		}
	}
	if len(found) == 0 {
		return "", 0
	}
	sort.Slice(found, func(i, j int) bool {
		if !found[i].CreatedAt.Equal(found[j].CreatedAt) {
			return found[i].CreatedAt.Before(found[j].CreatedAt)
		}
		return found[i].ID < found[j].ID
	})
	delete(tx.r.slots, found[0].ID)
	return found[0].ID, len(found)
}
