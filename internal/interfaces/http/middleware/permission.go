package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sezzlegate/internal/shared/constants"
	"sezzlegate/internal/shared/logger"
	"sezzlegate/internal/shared/utils"
)

type PermissionEnforcer interface {
	Enforce(subject string, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PermissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission checks the caller's role against the casbin policies.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied",
				"subject", c.GetString(constants.ContextKeySubject),
				"role", role,
				"resource", resource,
				"action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
