// Package lock guards scrape cycles against overlapping runs across
// process instances using a redis SETNX key with a TTL.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"JobScanner/internal/ports"
)

const lockKey = "jobscanner:scrape-cycle-lock"

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// RedisCycleLock implements ports.CycleLock over one redis key. The TTL
// bounds how long a crashed holder can block the next cycle.
type RedisCycleLock struct {
	client *redis.Client
}

var _ ports.CycleLock = (*RedisCycleLock)(nil)

// NewRedisCycleLock wraps an already-connected client.
func NewRedisCycleLock(client *redis.Client) *RedisCycleLock {
	return &RedisCycleLock{client: client}
}

// Acquire attempts to take the lock; false means another cycle holds it.
func (l *RedisCycleLock) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire cycle lock: %w", err)
	}
	return ok, nil
}

// Release drops the lock.
func (l *RedisCycleLock) Release(ctx context.Context) error {
	if err := l.client.Del(ctx, lockKey).Err(); err != nil {
		return fmt.Errorf("release cycle lock: %w", err)
	}
	return nil
}
