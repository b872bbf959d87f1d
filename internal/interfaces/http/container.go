package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"sezzlegate/internal/application/checkout"
	paymentServices "sezzlegate/internal/application/payment/services"
	paymentUsecases "sezzlegate/internal/application/payment/usecases"
	"sezzlegate/internal/infrastructure/adapters"
	"sezzlegate/internal/infrastructure/auth"
	"sezzlegate/internal/infrastructure/cache"
	"sezzlegate/internal/infrastructure/config"
	"sezzlegate/internal/infrastructure/email"
	"sezzlegate/internal/infrastructure/metrics"
	"sezzlegate/internal/infrastructure/permission"
	"sezzlegate/internal/infrastructure/ratelimit"
	"sezzlegate/internal/infrastructure/repository"
	"sezzlegate/internal/infrastructure/sezzle"
	"sezzlegate/internal/interfaces/http/handlers"
	"sezzlegate/internal/interfaces/http/middleware"
	"sezzlegate/internal/shared/db"
	"sezzlegate/internal/shared/logger"
)

// Version is reported by the health endpoint.
var Version = "dev"

// PaymentUseCases are the order actions shared by the HTTP API and the CLI.
type PaymentUseCases struct {
	GetOrder     *paymentUsecases.GetOrderUseCase
	ReleaseOrder *paymentUsecases.ReleaseOrderUseCase
	CaptureOrder *paymentUsecases.CaptureOrderUseCase
	RefundOrder  *paymentUsecases.RefundOrderUseCase
}

// Container holds all infrastructure components, use cases, handlers and
// middlewares, and closes what it opened in Shutdown.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Collector

	// Auth
	jwtService *auth.JWTService
	enforcer   *permission.Enforcer

	orderRepo *repository.OrderRepository
	sezzle    *sezzle.Client

	// Use cases
	payments           *PaymentUseCases
	createSessionUC    *checkout.CreateSessionUseCase
	completeCheckoutUC *checkout.CompleteCheckoutUseCase

	// Handlers
	orderHandler    *handlers.OrderHandler
	checkoutHandler *handlers.CheckoutHandler
	healthHandler   *handlers.HealthHandler

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires the application on top of an open database.
func NewContainer(database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     database,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	if err := c.initPayment(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initCheckout()
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.redis.Ping(ctx).Err(); err != nil {
			c.log.Warnw("redis not reachable, payment action lock will fail open", "addr", c.cfg.Redis.GetAddr(), "error", err)
		}
	}

	if c.cfg.Metrics.Enabled {
		c.metrics = metrics.NewCollector(c.cfg.Metrics.Namespace)
	}

	c.jwtService = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Auth.PolicyModelPath, c.log)
	if err != nil {
		return err
	}
	if err := enforcer.InitOrderPermissions(); err != nil {
		return err
	}
	c.enforcer = enforcer

	c.orderRepo = repository.NewOrderRepository(c.db, c.log)
	return nil
}

func (c *Container) initPayment() error {
	// a nil *Collector must not become a non-nil interface
	var observer sezzle.RequestObserver
	if c.metrics != nil {
		observer = c.metrics
	}

	client, err := sezzle.NewClient(sezzle.ClientConfig{
		BaseURL: c.cfg.Sezzle.GetBaseURL(),
		Credentials: sezzle.AuthCredentials{
			PublicKey:  c.cfg.Sezzle.PublicKey,
			PrivateKey: c.cfg.Sezzle.PrivateKey,
		},
		Timeout: c.cfg.Sezzle.Timeout,
		Breaker: sezzle.BreakerSettings{
			MaxRequests:         c.cfg.Breaker.MaxRequests,
			Interval:            c.cfg.Breaker.Interval,
			Timeout:             c.cfg.Breaker.Timeout,
			ConsecutiveFailures: c.cfg.Breaker.ConsecutiveFailures,
		},
	}, observer, c.log)
	if err != nil {
		return fmt.Errorf("failed to create sezzle client: %w", err)
	}
	c.sezzle = client

	validator := paymentServices.NewPaymentActionValidator(c.orderRepo, c.log)
	orderStatus := paymentServices.NewOrderStatusService(c.orderRepo, c.log)
	paymentStatus := paymentServices.NewPaymentStatusService(c.orderRepo, c.log)
	orderData := paymentServices.NewOrderDataService(c.orderRepo)
	exceptions := paymentServices.NewExceptionHandler(c.log)
	txRunner := db.NewTransactionManager(c.db)

	release := paymentUsecases.NewReleaseOrderUseCase(
		adapters.NewSezzleReleaseAdapter(sezzle.NewReleaseResource(client)),
		c.orderRepo, validator, orderStatus, paymentStatus, orderData, exceptions, txRunner,
		c.log.Named("release_order"),
	)
	capture := paymentUsecases.NewCaptureOrderUseCase(
		adapters.NewSezzleCaptureAdapter(sezzle.NewCaptureResource(client)),
		c.orderRepo, validator, orderStatus, paymentStatus, orderData, exceptions, txRunner,
		c.log.Named("capture_order"),
	)
	refund := paymentUsecases.NewRefundOrderUseCase(
		adapters.NewSezzleRefundAdapter(sezzle.NewRefundResource(client)),
		c.orderRepo, validator, orderStatus, paymentStatus, orderData, exceptions, txRunner,
		c.log.Named("refund_order"),
	)

	var locker paymentUsecases.ActionLocker
	if c.redis != nil {
		locker = cache.NewOrderActionLock(c.redis, c.cfg.Lock.TTL, c.log)
	}
	var notifier paymentUsecases.DivergenceNotifier
	if c.cfg.Email.Enabled {
		notifier = email.NewOpsNotifier(email.NewSMTPEmailService(email.SMTPConfig{
			Host:        c.cfg.Email.SMTPHost,
			Port:        c.cfg.Email.SMTPPort,
			Username:    c.cfg.Email.SMTPUser,
			Password:    c.cfg.Email.SMTPPassword,
			FromAddress: c.cfg.Email.FromAddress,
			FromName:    c.cfg.Email.FromName,
		}), c.cfg.Email.OpsAddresses, c.log)
	}

	for _, uc := range []interface {
		SetActionLocker(paymentUsecases.ActionLocker)
		SetActionRecorder(paymentUsecases.ActionRecorder)
		SetDivergenceNotifier(paymentUsecases.DivergenceNotifier)
	}{release, capture, refund} {
		if locker != nil {
			uc.SetActionLocker(locker)
		}
		if c.metrics != nil {
			uc.SetActionRecorder(c.metrics)
		}
		if notifier != nil {
			uc.SetDivergenceNotifier(notifier)
		}
	}

	c.payments = &PaymentUseCases{
		GetOrder:     paymentUsecases.NewGetOrderUseCase(c.orderRepo, c.log),
		ReleaseOrder: release,
		CaptureOrder: capture,
		RefundOrder:  refund,
	}
	return nil
}

func (c *Container) initCheckout() {
	c.createSessionUC = checkout.NewCreateSessionUseCase(
		sezzle.NewSessionResource(c.sezzle),
		c.orderRepo,
		checkout.NewSessionBuilder(c.cfg.Sezzle.CompleteURL, c.cfg.Sezzle.CancelURL),
		c.log.Named("create_session"),
	)
	c.completeCheckoutUC = checkout.NewCompleteCheckoutUseCase(
		sezzle.NewOrderResource(c.sezzle),
		c.orderRepo,
		db.NewTransactionManager(c.db),
		c.log.Named("complete_checkout"),
	)
}

func (c *Container) initHandlers() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtService, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	limits := ratelimit.RateLimitConfig{
		RequestsPerMinute: c.cfg.RateLimit.CheckoutPerMinute,
		RequestsPerHour:   c.cfg.RateLimit.CheckoutPerHour,
	}
	if c.redis != nil && limits.Enabled() {
		c.rateLimiter = middleware.NewRateLimiter(ratelimit.NewRedisRateLimiter(c.redis), limits, c.log)
	}

	c.orderHandler = handlers.NewOrderHandler(
		c.payments.GetOrder,
		c.payments.ReleaseOrder,
		c.payments.CaptureOrder,
		c.payments.RefundOrder,
		c.log,
	)
	c.checkoutHandler = handlers.NewCheckoutHandler(c.createSessionUC, c.completeCheckoutUC, c.log)

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	}
	c.healthHandler = handlers.NewHealthHandler(pinger, Version)
}

func (c *Container) Engine() *gin.Engine {
	return c.engine
}

func (c *Container) Payments() *PaymentUseCases {
	return c.payments
}

func (c *Container) JWTService() *auth.JWTService {
	return c.jwtService
}

// Shutdown releases connections opened by the container. The database is
// owned by the caller.
func (c *Container) Shutdown() error {
	var errs []error
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
