package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"sezzlegate/internal/infrastructure/ratelimit"
	"sezzlegate/internal/shared/logger"
	"sezzlegate/internal/shared/utils"
)

type Limiter interface {
	Allow(ctx context.Context, key string, config ratelimit.RateLimitConfig) (bool, error)
}

// RateLimiter limits requests per client IP and route.
type RateLimiter struct {
	limiter Limiter
	config  ratelimit.RateLimitConfig
	logger  logger.Interface
}

func NewRateLimiter(limiter Limiter, config ratelimit.RateLimitConfig, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		config:  config,
		logger:  logger,
	}
}

// Limit lets requests through when redis is unavailable.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP() + ":" + c.FullPath()

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.config)
		if err != nil {
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
