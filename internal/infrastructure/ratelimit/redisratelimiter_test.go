package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

// steppingClock advances one millisecond per call so each request gets a
// distinct sorted set member.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	limiter.now = steppingClock(time.Now())

	config := RateLimitConfig{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "test-key-minute", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "test-key-minute", config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	start := time.Now()
	limiter.now = steppingClock(start)

	config := RateLimitConfig{RequestsPerMinute: 2}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "slide", config)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "slide", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = steppingClock(start.Add(2 * time.Minute))
	allowed, err = limiter.Allow(ctx, "slide", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_DifferentKeysAndReset(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	limiter.now = steppingClock(time.Now())

	config := RateLimitConfig{RequestsPerHour: 1}

	allowed, err := limiter.Allow(ctx, "a", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "b", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "a", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	remaining, err := limiter.GetRemaining(ctx, "a", time.Hour, 1)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	require.NoError(t, limiter.Reset(ctx, "a"))
	allowed, err = limiter.Allow(ctx, "a", config)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitConfig_Enabled(t *testing.T) {
	assert.False(t, RateLimitConfig{}.Enabled())
	assert.True(t, RateLimitConfig{RequestsPerHour: 1}.Enabled())
}
