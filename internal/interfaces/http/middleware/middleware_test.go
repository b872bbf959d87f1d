package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sezzlegate/internal/infrastructure/auth"
	"sezzlegate/internal/infrastructure/ratelimit"
	"sezzlegate/internal/shared/authorization"
	"sezzlegate/internal/shared/constants"
	"sezzlegate/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeEnforcer struct {
	allowed map[string]bool
	err     error
}

func (f *fakeEnforcer) Enforce(subject, resource, action string) (bool, error) {
	return f.allowed[subject+":"+resource+":"+action], f.err
}

type recordingObserver struct {
	paths []string
	codes []int
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, statusCode int, _ time.Duration) {
	r.paths = append(r.paths, path)
	r.codes = append(r.codes, statusCode)
}

func newProtectedEngine(t *testing.T, jwtService *auth.JWTService, enforcer PermissionEnforcer) *gin.Engine {
	t.Helper()
	log := logger.NewNopLogger()
	authMW := NewAuthMiddleware(jwtService, log)
	permMW := NewPermissionMiddleware(enforcer, log)

	engine := gin.New()
	engine.POST("/orders/:uuid/release",
		authMW.RequireAuth(),
		permMW.RequirePermission(constants.ResourceOrder, constants.ActionRelease),
		func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString(constants.ContextKeySubject))
		})
	return engine
}

func TestAuthAndPermission(t *testing.T) {
	jwtService := auth.NewJWTService("secret", "sezzlegate", 5)
	enforcer := &fakeEnforcer{allowed: map[string]bool{"operator:order:release": true}}
	engine := newProtectedEngine(t, jwtService, enforcer)

	operatorToken, _, err := jwtService.Generate("ops-1", authorization.RoleOperator)
	require.NoError(t, err)
	viewerToken, _, err := jwtService.Generate("viewer-1", authorization.RoleViewer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"forbidden role", "Bearer " + viewerToken, http.StatusForbidden},
		{"allowed role", "Bearer " + operatorToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/orders/abc/release", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "ops-1", w.Body.String())
			}
		})
	}
}

func TestPermission_EnforcerError(t *testing.T) {
	jwtService := auth.NewJWTService("secret", "", 5)
	engine := newProtectedEngine(t, jwtService, &fakeEnforcer{err: errors.New("db down")})

	token, _, err := jwtService.Generate("ops-1", authorization.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/orders/abc/release", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDAndMetrics(t *testing.T) {
	observer := &recordingObserver{}
	engine := gin.New()
	engine.Use(RequestID(), Metrics(observer), Recovery(logger.NewNopLogger()))
	engine.GET("/orders/:uuid", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID))
	})
	engine.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/123", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/456", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, []string{"/orders/:uuid", "/orders/:uuid", "/boom", "unmatched"}, observer.paths)
	assert.Equal(t, []int{200, 200, 500, 404}, observer.codes)
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string, _ ratelimit.RateLimitConfig) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func TestRateLimiter(t *testing.T) {
	limiter := &countingLimiter{limit: 2, seen: map[string]int{}}
	engine := gin.New()
	engine.POST("/api/checkout/sessions",
		NewRateLimiter(limiter, ratelimit.RateLimitConfig{RequestsPerMinute: 2}, logger.NewNopLogger()).Limit(),
		func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/checkout/sessions", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
	assert.Len(t, limiter.seen, 1)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	engine := gin.New()
	engine.POST("/x", NewRateLimiter(limiter, ratelimit.RateLimitConfig{RequestsPerMinute: 1}, logger.NewNopLogger()).Limit(),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
		wantCreds  string
	}{
		{name: "listed origin", allowed: []string{"https://shop.example"}, origin: "https://shop.example", wantOrigin: "https://shop.example", wantCreds: "true"},
		{name: "unlisted origin", allowed: []string{"https://shop.example"}, origin: "https://evil.example"},
		{name: "wildcard", allowed: []string{"*"}, origin: "https://any.example", wantOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(SecurityHeaders(), CORS(tt.allowed))
			engine.POST("/api/checkout/sessions", func(c *gin.Context) { c.Status(http.StatusCreated) })

			req := httptest.NewRequest(http.MethodOptions, "/api/checkout/sessions", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}
}
