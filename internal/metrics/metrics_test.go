package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentsCounter(t *testing.T) {
	m := New()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PaymentsTotal))

	m.PaymentsTotal.Inc()
	m.PaymentsTotal.Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsTotal))
}

func TestRegistriesAreIndependent(t *testing.T) {
	first := New()
	second := New()

	first.PaymentsTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(first.PaymentsTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.PaymentsTotal))
}

func TestHandler_TextExposition(t *testing.T) {
	m := New()
	m.PaymentsTotal.Add(3)
	m.HTTPRequests.WithLabelValues("POST", "/payments", "201").Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept", "application/vnd.google.protobuf")
	rec := httptest.NewRecorder()

	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "# TYPE payment_service_payments_total counter")
	assert.Contains(t, string(body), "payment_service_payments_total 3")
	assert.Contains(t, string(body), `payment_service_http_requests_total{method="POST",path="/payments",status="201"} 1`)
}
