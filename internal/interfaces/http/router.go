package http

import (
	"github.com/gin-gonic/gin"

	"sezzlegate/internal/interfaces/http/middleware"
	"sezzlegate/internal/shared/constants"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.CustomLogger(c.log))
	if c.metrics != nil {
		c.engine.Use(middleware.Metrics(c.metrics))
	}
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))

	c.engine.GET("/health", c.healthHandler.HealthCheck)
	if c.metrics != nil {
		c.engine.GET("/metrics", gin.WrapH(c.metrics.Handler()))
	}

	c.setupCheckoutRoutes()
	c.setupBackendRoutes()
}

// setupCheckoutRoutes configures the storefront routes
func (c *Container) setupCheckoutRoutes() {
	checkoutGroup := c.engine.Group("/api/checkout")
	if c.rateLimiter != nil {
		checkoutGroup.Use(c.rateLimiter.Limit())
	}
	{
		checkoutGroup.POST("/sessions", c.checkoutHandler.CreateSession)
		checkoutGroup.POST("/:uuid/complete", c.checkoutHandler.CompleteCheckout)
	}
}

// setupBackendRoutes configures the admin order routes
func (c *Container) setupBackendRoutes() {
	orders := c.engine.Group("/api/backend/orders")
	orders.Use(c.authMiddleware.RequireAuth())
	{
		orders.GET("/:uuid",
			c.permissionMiddleware.RequirePermission(constants.ResourceOrder, constants.ActionRead),
			c.orderHandler.GetOrder)
		orders.POST("/:uuid/release",
			c.permissionMiddleware.RequirePermission(constants.ResourceOrder, constants.ActionRelease),
			c.orderHandler.ReleaseOrder)
		orders.POST("/:uuid/capture",
			c.permissionMiddleware.RequirePermission(constants.ResourceOrder, constants.ActionCapture),
			c.orderHandler.CaptureOrder)
		orders.POST("/:uuid/refund",
			c.permissionMiddleware.RequirePermission(constants.ResourceOrder, constants.ActionRefund),
			c.orderHandler.RefundOrder)
	}
}
