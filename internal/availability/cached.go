package availability

import (
	"context"

	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/metrics"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
)

// CachedResolver serves reads from a Cache and falls back to the wrapped
// Source whenever the cache misses or fails.
type CachedResolver struct {
	inner Source
	cache Cache
}

func NewCachedResolver(inner Source, cache Cache) *CachedResolver {
	return &CachedResolver{inner: inner, cache: cache}
}

func (r *CachedResolver) Resolve(ctx context.Context, facilityID, date string) ([]SlotAvailability, error) {
	items, gen, hit, err := r.cache.Lookup(ctx, facilityID, date)
	if err != nil {
		logger.Warn("availability cache unavailable", "facility_id", facilityID, "error", err)
		metrics.RecordResolution("bypass")
		return r.inner.Resolve(ctx, facilityID, date)
	}
	if hit {
		metrics.RecordResolution("hit")
		return items, nil
	}

	metrics.RecordResolution("miss")
	items, err = r.inner.Resolve(ctx, facilityID, date)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Store(ctx, facilityID, gen, date, items); err != nil {
		logger.Warn("failed to cache availability", "facility_id", facilityID, "date", date, "error", err)
	}
	return items, nil
}

// Bind invalidates a facility's cached availability on every slot or
// reservation change. The returned func unsubscribes.
func (r *CachedResolver) Bind(hub *notify.Hub) func() {
	invalidate := func(c notify.Change) {
		if c.FacilityID == "" {
			return
		}
		if err := r.cache.Invalidate(context.Background(), c.FacilityID); err != nil {
			logger.Error("failed to invalidate availability cache", "facility_id", c.FacilityID, "error", err)
		}
	}

	unsubSlots := hub.Subscribe(notify.CollectionTimeSlots, invalidate)
	unsubReservations := hub.Subscribe(notify.CollectionReservations, invalidate)
	return func() {
		unsubSlots()
		unsubReservations()
	}
}
