package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSetNX struct {
	held map[string]bool
	ttl  time.Duration
	err  error
}

func (m *mockSetNX) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if m.err != nil {
		return redis.NewIntResult(0, m.err)
	}
	var n int64
	for _, key := range keys {
		if m.held[key] {
			delete(m.held, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mockSetNX) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if m.err != nil {
		return redis.NewBoolResult(false, m.err)
	}
	m.ttl = expiration
	if m.held[key] {
		return redis.NewBoolResult(false, nil)
	}
	m.held[key] = true
	return redis.NewBoolResult(true, nil)
}

func TestRedisLock_Acquire(t *testing.T) {
	ctx := context.Background()

	t.Run("first caller wins", func(t *testing.T) {
		client := &mockSetNX{held: map[string]bool{}}
		lock := NewRedisLock(client)

		ok, err := lock.Acquire(ctx, "reminder:1:2", 48*time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 48*time.Hour, client.ttl)

		ok, err = lock.Acquire(ctx, "reminder:1:2", 48*time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis error", func(t *testing.T) {
		lock := NewRedisLock(&mockSetNX{err: errors.New("connection refused")})

		ok, err := lock.Acquire(ctx, "reminder:1:2", time.Hour)
		require.Error(t, err)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "reminder:1:2")
	})
}

func TestRedisLock_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("released key can be claimed again", func(t *testing.T) {
		lock := NewRedisLock(&mockSetNX{held: map[string]bool{}})

		ok, err := lock.Acquire(ctx, "reminder:1:2", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, lock.Release(ctx, "reminder:1:2"))

		ok, err = lock.Acquire(ctx, "reminder:1:2", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("redis error", func(t *testing.T) {
		lock := NewRedisLock(&mockSetNX{err: errors.New("connection refused")})
		assert.Error(t, lock.Release(ctx, "reminder:1:2"))
	})
}
