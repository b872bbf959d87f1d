package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordPaymentAction(t *testing.T) {
	c := NewCollector("test")

	c.RecordPaymentAction("DoRelease", true)
	c.RecordPaymentAction("DoRelease", false)
	c.RecordPaymentAction("DoRelease", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.PaymentActionsTotal.WithLabelValues("DoRelease", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.PaymentActionsTotal.WithLabelValues("DoRelease", "failure")))
}

func TestCollector_HandlerExposesSeries(t *testing.T) {
	c := NewCollector("test")
	c.ObserveProviderRequest("release", 200, 120*time.Millisecond)
	c.ObserveProviderRequest("release", 0, time.Second)
	c.ObserveHTTPRequest(http.MethodPost, "/api/backend/orders/:uuid/release", 200, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_provider_request_duration_seconds_count{operation="release",status="200"} 1`)
	assert.Contains(t, string(body), `test_provider_request_duration_seconds_count{operation="release",status="error"} 1`)
	assert.Contains(t, string(body), `test_http_requests_total{method="POST",path="/api/backend/orders/:uuid/release",status="200"} 1`)
}

func TestNewCollector_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewCollector("test")
		NewCollector("test")
	})
}
