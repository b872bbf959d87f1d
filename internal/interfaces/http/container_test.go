package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/domain/order"
	vo "sezzlegate/internal/domain/order/valueobjects"
	"sezzlegate/internal/infrastructure/config"
	"sezzlegate/internal/infrastructure/database"
	"sezzlegate/internal/infrastructure/migration"
	"sezzlegate/internal/shared/authorization"
	sharedConfig "sezzlegate/internal/shared/config"
	"sezzlegate/internal/shared/logger"
)

const e2eOrderUUID = "0f6a4a6e-3c1d-4b7e-9f64-1a2b3c4d5e6f"

func init() {
	gin.SetMode(gin.TestMode)
}

func newFakeSezzle(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v2/authentication":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token":           "token-1",
				"expiration_date": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
			})
		case strings.HasSuffix(r.URL.Path, "/release"):
			_ = json.NewEncoder(w).Encode(map[string]string{"uuid": "release-1"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestContainer(t *testing.T) *Container {
	t.Helper()

	mr := miniredis.RunT(t)
	sezzleSrv := newFakeSezzle(t)

	cfg := &config.Config{
		Database: sharedConfig.DatabaseConfig{
			Driver:     database.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "e2e.db"),
		},
		Redis: sharedConfig.RedisConfig{Enabled: true},
		Auth: sharedConfig.AuthConfig{
			JWT: sharedConfig.JWTConfig{Secret: "secret", Issuer: "sezzlegate", AccessExpMinutes: 5},
		},
		Sezzle: sharedConfig.SezzleConfig{
			BaseURL:    sezzleSrv.URL,
			PublicKey:  "pub",
			PrivateKey: "priv",
			Timeout:    2 * time.Second,
		},
		Lock:    sharedConfig.LockConfig{TTL: time.Minute},
		Metrics: sharedConfig.MetricsConfig{Enabled: true, Namespace: "e2e"},
	}
	host, port, err := splitHostPort(mr.Addr())
	require.NoError(t, err)
	cfg.Redis.Host, cfg.Redis.Port = host, port

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := logger.NewNopLogger()
	manager, err := migration.NewManager(&cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, manager.Migrate(db))

	c, err := NewContainer(db, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown() })
	c.SetupRoutes()
	return c
}

func (c *Container) serve(method, path, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.Engine().ServeHTTP(w, req)
	return w
}

func TestContainer_HealthAndMetrics(t *testing.T) {
	c := newTestContainer(t)

	w := c.serve(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = c.serve(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "e2e_http_requests_total")
}

func TestContainer_PreflightCarriesSecurityHeaders(t *testing.T) {
	c := newTestContainer(t)

	w := c.serve(http.MethodOptions, "/api/checkout/sessions", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
}

func TestContainer_ReleaseFlow(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	o, err := order.NewOrder(e2eOrderUUID, "100001", "basket-1", "USD")
	require.NoError(t, err)
	require.NoError(t, o.Authorize(decimal.RequireFromString("50.00")))
	require.NoError(t, c.orderRepo.Create(ctx, o))

	operator, _, err := c.JWTService().Generate("ops-1", authorization.RoleOperator)
	require.NoError(t, err)
	viewer, _, err := c.JWTService().Generate("viewer-1", authorization.RoleViewer)
	require.NoError(t, err)

	releasePath := "/api/backend/orders/" + e2eOrderUUID + "/release"

	w := c.serve(http.MethodPost, releasePath, "", `{"amount":"50.00","currency":"USD"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = c.serve(http.MethodPost, releasePath, viewer, `{"amount":"50.00","currency":"USD"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.serve(http.MethodPost, releasePath, operator, `{"amount":"80.00","currency":"USD"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid amount")

	w = c.serve(http.MethodPost, releasePath, operator, `{"amount":"50.00","currency":"USD"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := c.orderRepo.GetByTemporaryID(ctx, e2eOrderUUID)
	require.NoError(t, err)
	assert.Equal(t, vo.PaymentStatusCancelled, stored.PaymentStatus())
	assert.Equal(t, vo.OrderStatusInProcess, stored.OrderStatus())
	assert.True(t, stored.Attributes().AuthAmount.IsZero())
	assert.True(t, decimal.RequireFromString("50").Equal(stored.Attributes().ReleasedAmount))

	w = c.serve(http.MethodGet, "/api/backend/orders/"+e2eOrderUUID, viewer, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"provider_uuid":"release-1"`)

	w = c.serve(http.MethodGet, "/metrics", "", "")
	assert.Contains(t, w.Body.String(), `e2e_payment_actions_total{action="DoRelease",outcome="success"} 1`)
}

func splitHostPort(addr string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}
