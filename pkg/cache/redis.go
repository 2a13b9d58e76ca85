package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"catalog-gateway/pkg/catalog"
)

// RedisStore is a Store backed by Redis. Expiry is enforced server-side
// via key TTLs, so no sweeper is needed.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Get retrieves the products cached under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]catalog.Product, bool, error) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.WithLabelValues("redis").Inc()
			return nil, false, nil
		}
		CacheErrors.WithLabelValues("redis", "get").Inc()
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		CacheErrors.WithLabelValues("redis", "get").Inc()
		return nil, false, fmt.Errorf("unmarshal cache entry: %w", err)
	}

	CacheHits.WithLabelValues("redis").Inc()
	return products, true, nil
}

// Set stores products under key with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, key string, products []catalog.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		CacheErrors.WithLabelValues("redis", "set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("redis", "set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes the entry for key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		CacheErrors.WithLabelValues("redis", "delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close is a no-op; the Redis client is owned by the caller.
func (s *RedisStore) Close() error {
	return nil
}
