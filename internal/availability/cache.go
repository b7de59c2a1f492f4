package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
)

// Cache stores resolved availability per facility generation. Bumping a
// facility's generation makes every cached date of that facility unreachable.
type Cache interface {
	Lookup(ctx context.Context, facilityID, date string) (items []SlotAvailability, gen int64, hit bool, err error)
	Store(ctx context.Context, facilityID string, gen int64, date string, items []SlotAvailability) error
	Invalidate(ctx context.Context, facilityID string) error
}

type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: client, ttl: ttl}
}

func genKey(facilityID string) string {
	return "availability:gen:" + facilityID
}

func dataKey(facilityID string, gen int64, date string) string {
	return fmt.Sprintf("availability:%s:%d:%s", facilityID, gen, date)
}

func (c *RedisCache) generation(ctx context.Context, facilityID string) (int64, error) {
	gen, err := c.redis.Get(ctx, genKey(facilityID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, db.Unavailable(err)
	}
	return gen, nil
}

func (c *RedisCache) Lookup(ctx context.Context, facilityID, date string) ([]SlotAvailability, int64, bool, error) {
	gen, err := c.generation(ctx, facilityID)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.redis.Get(ctx, dataKey(facilityID, gen, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, db.Unavailable(err)
	}

	var items []SlotAvailability
	if err := json.Unmarshal(raw, &items); err != nil {
		// Treat a corrupt entry as a miss; Store overwrites it.
		return nil, gen, false, nil
	}
	return items, gen, true, nil
}

func (c *RedisCache) Store(ctx context.Context, facilityID string, gen int64, date string, items []SlotAvailability) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := c.redis.Set(ctx, dataKey(facilityID, gen, date), data, c.ttl).Err(); err != nil {
		return db.Unavailable(err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, facilityID string) error {
	if err := c.redis.Incr(ctx, genKey(facilityID)).Err(); err != nil {
		return db.Unavailable(err)
	}
	return nil
}
