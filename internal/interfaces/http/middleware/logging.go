package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"sezzlegate/internal/shared/constants"
	"sezzlegate/internal/shared/logger"
)

// CustomLogger writes one structured line per request. Order routes also carry the order uuid.
func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}

		if requestID := c.GetString(constants.ContextKeyRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}

		if subject := c.GetString(constants.ContextKeySubject); subject != "" {
			args = append(args, "subject", subject)
		}

		if orderUUID := c.Param("uuid"); orderUUID != "" {
			args = append(args, "order_uuid", orderUUID)
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed successfully", args...)
		}
	}
}
