// internal/analytics/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"analytics-dashboard/internal/models"
)

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
}

// Redis backs the resolution cache with a shared Redis instance so several
// dashboard replicas can reuse each other's remote resolutions. TTL handling
// is delegated to Redis key expiry.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewRedis creates a Redis-backed cache; ttl <= 0 uses DefaultTTL.
func NewRedis(client *redis.Client, ttl time.Duration, log Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl, logger: log}
}

func (r *Redis) Get(ctx context.Context, key string) (*models.AnalyticsQuery, bool) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil, false
	}
	var result models.AnalyticsQuery
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		r.logger.Warn("cache entry corrupt", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return nil, false
	}
	return &result, true
}

func (r *Redis) Set(ctx context.Context, key string, result models.AnalyticsQuery) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
