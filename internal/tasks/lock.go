package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// lockClient is the part of *redis.Client used by RedisLock
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisLock claims keys with SETNX so that every scheduler replica sends a reminder at most once
type RedisLock struct {
	client lockClient
}

// NewRedisLock creates a new Redis backed lock
func NewRedisLock(client lockClient) *RedisLock {
	return &RedisLock{client: client}
}

// Acquire sets key for ttl and reports whether this call created it
func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set %s: %w", key, err)
	}
	return ok, nil
}

// Release deletes key so that a later Acquire can claim it again
func (l *RedisLock) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
