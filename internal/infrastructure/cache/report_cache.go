package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/willy-peters/SmartPOS/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// ReportCache is a shared read-through cache for aggregate report payloads.
// Entries are JSON-encoded and expire on a short TTL so reports stay close to
// live data without hitting the database on every request.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisReportCache implements ReportCache using Redis. Suitable for
// distributed deployments where multiple instances share cached reports.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisReportCache creates a Redis-backed report cache and verifies the
// connection.
func NewRedisReportCache(cfg config.RedisConfig, ttl time.Duration) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisReportCacheWithClient(client, "report:", ttl), nil
}

// NewRedisReportCacheWithClient creates a cache around an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = "report:"
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get loads a cached payload into dest. Returns false when the key is absent.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cached report: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return true, nil
}

// Set stores a payload under key with the configured TTL.
func (c *RedisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report for caching: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// Invalidate drops cached entries. Missing keys are not an error.
func (c *RedisReportCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = c.keyPrefix + k
	}
	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached reports: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// NoopReportCache is used when Redis is disabled. Every Get misses and Set is
// discarded, so services always fall through to the repository.
type NoopReportCache struct{}

// NewNoopReportCache creates a cache that stores nothing.
func NewNoopReportCache() *NoopReportCache {
	return &NoopReportCache{}
}

// Get always misses.
func (NoopReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

// Set discards the value.
func (NoopReportCache) Set(ctx context.Context, key string, value any) error { return nil }

// Invalidate does nothing.
func (NoopReportCache) Invalidate(ctx context.Context, keys ...string) error { return nil }
