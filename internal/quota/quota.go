// Package quota enforces the per-seller daily listing cap with an
// atomically-incremented counter keyed by (seller, day). Keys roll over
// by expiry rather than explicit cleanup.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyTTL keeps yesterday's counters around briefly for inspection before
// they expire on their own.
const keyTTL = 48 * time.Hour

const keyPrefix = "listing_quota"

// Counter tracks daily listing counts per seller
type Counter interface {
	// Increment bumps the seller's counter for the given day and returns
	// the new count.
	Increment(ctx context.Context, seller string, day time.Time) (int64, error)
	// Decrement undoes one increment, used best-effort when a listing
	// fails after its quota slot was taken.
	Decrement(ctx context.Context, seller string, day time.Time) error
}

type redisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter creates a Counter backed by Redis
func NewRedisCounter(rdb *redis.Client) Counter {
	return &redisCounter{rdb: rdb}
}

func dayKey(seller string, day time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, seller, day.UTC().Format("2006-01-02"))
}

func (c *redisCounter) Increment(ctx context.Context, seller string, day time.Time) (int64, error) {
	key := dayKey(seller, day)
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment listing quota: %w", err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, keyTTL).Err(); err != nil {
			return 0, fmt.Errorf("failed to set quota key expiry: %w", err)
		}
	}
	return count, nil
}

func (c *redisCounter) Decrement(ctx context.Context, seller string, day time.Time) error {
	if err := c.rdb.Decr(ctx, dayKey(seller, day)).Err(); err != nil {
		return fmt.Errorf("failed to decrement listing quota: %w", err)
	}
	return nil
}
