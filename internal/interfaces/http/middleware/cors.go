package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"sezzlegate/internal/shared/constants"
)

const wildcardOrigin = "*"

// CORS allows storefront origins to reach the checkout endpoints.
// A "*" entry accepts any origin but never sends credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAny := slices.Contains(allowedOrigins, wildcardOrigin)

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		c.Header("Vary", "Origin")

		if origin != "" {
			switch {
			case slices.Contains(allowedOrigins, origin):
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
			case allowAny:
				c.Header("Access-Control-Allow-Origin", wildcardOrigin)
			}
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, "+constants.HeaderAuthorization+", "+constants.HeaderXRequestID)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Expose-Headers", constants.HeaderXRequestID)
			c.Header("Access-Control-Max-Age", "600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SecurityHeaders sets response headers for a JSON-only API.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
