package review

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CamiloTriana75/ProyectoElden/internal/db"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/metrics"
)

const Key = "schedule:inconsistencies"

const (
	KindNoMatch         = "no_match"
	KindMultipleMatches = "multiple_matches"
)

// Inconsistency records a confirmation whose slot definition could not be
// matched to exactly one record.
type Inconsistency struct {
	ReservationID string    `json:"reservationId"`
	FacilityID    string    `json:"facilityId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	Kind          string    `json:"kind"`
	Matches       int       `json:"matches"`
	DeletedSlotID string    `json:"deletedSlotId,omitempty"`
	DetectedAt    time.Time `json:"detectedAt"`
}

type Queue struct {
	redis *redis.Client
	now   func() time.Time
}

func NewQueue(client *redis.Client) *Queue {
	return &Queue{redis: client, now: time.Now}
}

func (q *Queue) Flag(ctx context.Context, item Inconsistency) error {
	if item.DetectedAt.IsZero() {
		item.DetectedAt = q.now().UTC()
	}

	data, err := json.Marshal(item)
	if err != nil {
		logger.Errorf("Failed to marshal inconsistency: %v", err)
		return err
	}

	if err := q.redis.LPush(ctx, Key, data).Err(); err != nil {
		logger.Error("failed to flag inconsistency", "reservation_id", item.ReservationID, "error", err)
		return db.Unavailable(err)
	}

	logger.Info("inconsistency flagged for review", "reservation_id", item.ReservationID, "kind", item.Kind)
	metrics.ReviewQueueLength.Inc()
	return nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (q *Queue) List(ctx context.Context, limit int64) ([]Inconsistency, error) {
	stop := limit - 1
	if limit <= 0 {
		stop = -1
	}

	raw, err := q.redis.LRange(ctx, Key, 0, stop).Result()
	if err != nil {
		return nil, db.Unavailable(err)
	}

	items := make([]Inconsistency, 0, len(raw))
	for _, r := range raw {
		var item Inconsistency
		if err := json.Unmarshal([]byte(r), &item); err != nil {
			logger.Warnf("Bad inconsistency entry: %v", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	n, err := q.redis.LLen(ctx, Key).Result()
	if err != nil {
		return 0, db.Unavailable(err)
	}
	metrics.ReviewQueueLength.Set(float64(n))
	return n, nil
}

func (q *Queue) Close() error {
	return q.redis.Close()
}
