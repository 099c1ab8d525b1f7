package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const renderCacheKeyPrefix = "notebooker:render:"

// RedisRenderCache caches rendered report HTML keyed by job ID so repeated
// result reads do not hit Postgres for the full payload.
type RedisRenderCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRenderCache creates a RedisRenderCache with the given client and TTL.
// A non-positive TTL means cached entries never expire.
func NewRedisRenderCache(client redis.UniversalClient, ttl time.Duration) *RedisRenderCache {
	return &RedisRenderCache{client: client, ttl: ttl}
}

// Get returns the cached HTML for a job, or nil when the entry is absent.
func (r *RedisRenderCache) Get(ctx context.Context, jobID string) ([]byte, error) {
	if jobID == "" {
		return nil, errors.New("job ID cannot be empty")
	}

	result, err := r.client.Get(ctx, renderCacheKeyPrefix+jobID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("render cache get: %w", err)
	}

	return []byte(result), nil
}

// Set stores the rendered HTML for a job.
func (r *RedisRenderCache) Set(ctx context.Context, jobID string, html []byte) error {
	if jobID == "" {
		return errors.New("job ID cannot be empty")
	}

	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, renderCacheKeyPrefix+jobID, html, ttl).Err(); err != nil {
		return fmt.Errorf("render cache set: %w", err)
	}
	return nil
}
