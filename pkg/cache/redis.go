package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	lrerrors "github.com/matzehuels/layerroute/pkg/errors"
)

// DefaultNamespace prefixes every key a [RedisCache] writes.
const DefaultNamespace = "layerroute:"

// RedisCache stores entries in Redis under a key namespace, so several
// projects can share one instance and Clear only touches its own keys.
type RedisCache struct {
	client    *redis.Client
	namespace string
	backoff   Backoff
}

// NewRedisCache connects to the Redis instance at url and verifies the
// connection with a PING. An empty namespace selects [DefaultNamespace].
func NewRedisCache(ctx context.Context, url, namespace string) (*RedisCache, error) {
	if err := lrerrors.ValidateRedisURL(url); err != nil {
		return nil, err
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, lrerrors.Wrap(lrerrors.ErrCodeInvalidConfig, err, "parse redis URL")
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: redis ping: %v", ErrNetwork, err)
	}
	return &RedisCache{client: client, namespace: namespace, backoff: DefaultBackoff}, nil
}

// Get retrieves a value. redis.Nil is a miss; other failures are retried.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := c.backoff.Do(ctx, func() error {
		val, err := c.client.Get(ctx, c.namespace+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return networkError("redis get", err)
		}
		data, hit = val, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value. A zero ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.backoff.Do(ctx, func() error {
		if err := c.client.Set(ctx, c.namespace+key, data, ttl).Err(); err != nil {
			return networkError("redis set", err)
		}
		return nil
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.backoff.Do(ctx, func() error {
		if err := c.client.Del(ctx, c.namespace+key).Err(); err != nil {
			return networkError("redis del", err)
		}
		return nil
	})
}

// Clear deletes every key in the cache's namespace.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	n := 0
	iter := c.client.Scan(ctx, 0, c.namespace+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, fmt.Errorf("%w: redis del: %v", ErrNetwork, err)
		}
		n++
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("%w: redis scan: %v", ErrNetwork, err)
	}
	return n, nil
}

// Namespace returns the key prefix.
func (c *RedisCache) Namespace() string { return c.namespace }

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// String names the backend in logs and metrics.
func (c *RedisCache) String() string { return "redis" }

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
