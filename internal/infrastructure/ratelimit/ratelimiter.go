package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// Enabled reports whether any window is limited.
func (c RateLimitConfig) Enabled() bool {
	return c.RequestsPerMinute > 0 || c.RequestsPerHour > 0
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration, limit int) (int64, error)
	Reset(ctx context.Context, key string) error
}
