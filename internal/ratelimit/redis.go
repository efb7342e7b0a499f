package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisQuotaTracker struct {
	client *redis.Client
}

// NewRedisQuotaTracker returns a Redis-backed tracker. The counter relies
// on Redis single-key atomicity; no cross-key coordination is needed.
func NewRedisQuotaTracker(client *redis.Client) QuotaTracker {
	return &redisQuotaTracker{client: client}
}

func (t *redisQuotaTracker) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
