package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_IsLimited_IsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)
	ctx := context.Background()

	limited, err := limiter.IsLimited(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, limited, "first request for client-a should not be limited")

	limited, err = limiter.IsLimited(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, limited, "second immediate request for client-a should be limited")

	limited, err = limiter.IsLimited(ctx, "client-b")
	require.NoError(t, err)
	assert.False(t, limited, "limits are tracked per key")
}

func TestInMemoryRateLimiter_RefillsAfterWindow(t *testing.T) {
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		limited, _ := limiter.IsLimited(ctx, "ip")
		assert.False(t, limited)
	}
	limited, _ := limiter.IsLimited(ctx, "ip")
	assert.True(t, limited)

	clock = clock.Add(31 * time.Second)
	limited, _ = limiter.IsLimited(ctx, "ip")
	assert.False(t, limited, "one token refills every window/requests")
}

func TestInMemoryRateLimiter_SweepsIdleKeys(t *testing.T) {
	limiter := NewInMemoryRateLimiter(5, time.Second)
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	_, _ = limiter.IsLimited(context.Background(), "stale")
	clock = clock.Add(time.Minute)
	for i := 1; i < sweepEvery; i++ {
		_, _ = limiter.IsLimited(context.Background(), "fresh")
	}

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.limiters, "stale")
	assert.Contains(t, limiter.limiters, "fresh")
}

func TestNewRateLimiter_SelectsStrategy(t *testing.T) {
	_, ok := NewRateLimiter(&RateLimitConfig{Requests: 10, Window: time.Minute}).(*InMemoryRateLimiter)
	assert.True(t, ok)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	_, ok = NewRateLimiter(&RateLimitConfig{Requests: 10, Window: time.Minute, Redis: client}).(*RedisRateLimiter)
	assert.True(t, ok)
}

type recordingLogger struct{ messages []string }

func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.messages = append(l.messages, msg) }

func TestRedisRateLimiter_SurfacesBackendErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := &recordingLogger{}
	limiter := NewRedisRateLimiter(client, 10, time.Minute, logger)

	limited, err := limiter.IsLimited(context.Background(), "10.0.0.1")
	assert.Error(t, err)
	assert.False(t, limited)
	assert.Len(t, logger.messages, 1)
}
