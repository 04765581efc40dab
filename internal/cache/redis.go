// Package cache provides the Redis access layer: the analysis result
// cache, the per-IP rate limiter and the connection shared with the
// history event stream.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pool sizing. Traffic is one cache lookup per coaching request plus
// the stream worker's blocking reads, so the pool stays small.
const (
	poolSize        = 10
	minIdleConns    = 2
	poolTimeout     = 4 * time.Second
	connMaxIdleTime = 5 * time.Minute
)

// Cache wraps the Redis client backing the result cache, the rate
// limiter and the history stream.
type Cache struct {
	client *redis.Client
}

// New parses the Redis URL, applies pool settings and verifies
// connectivity before returning.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = poolSize
	opt.MinIdleConns = minIdleConns
	opt.PoolTimeout = poolTimeout
	opt.ConnMaxIdleTime = connMaxIdleTime

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping reports Redis connectivity for the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client and its connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the raw client for the history publisher and worker,
// which speak the Streams API directly.
func (c *Cache) Client() *redis.Client {
	return c.client
}
