package readiness

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache stores computed snapshots between requests. Implementations are
// best-effort: a miss or error just means the snapshot gets recomputed.
type Cache interface {
	Get(ctx context.Context, key string) (*Snapshot, bool, error)
	Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// CacheKey builds the cache key for a user and scope. A nil scope means
// the whole syllabus.
func CacheKey(userID uuid.UUID, scope *uuid.UUID) string {
	if scope == nil {
		return fmt.Sprintf("readiness:%s:all", userID)
	}
	return fmt.Sprintf("readiness:%s:%s", userID, scope)
}

// RedisCache is a Cache on a shared Redis, so every server process sees
// the same snapshots and invalidations.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Snapshot, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt entry is a miss, not a failure.
		return nil, false, nil
	}
	return &snap, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, snap *Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
