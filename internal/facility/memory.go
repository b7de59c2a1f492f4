package facility

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository keeps facilities in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]Facility
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]Facility)}
}

func (r *MemoryRepository) Create(_ context.Context, f *Facility) (*Facility, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := *f
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	r.items[out.ID] = out
	return &out, nil
}

func (r *MemoryRepository) GetAll(_ context.Context) ([]Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Facility, 0, len(r.items))
	for _, f := range r.items {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Facility, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.items[id]
	if !ok {
		return nil, ErrFacilityNotFound
	}
	return &f, nil
}
