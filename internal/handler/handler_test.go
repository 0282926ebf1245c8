package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment/internal/auth"
	"payment/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	testCases := []struct {
		err      error
		expected int
	}{
		{auth.ErrMissingCredential, http.StatusUnauthorized},
		{auth.ErrMalformedCredential, http.StatusUnauthorized},
		{fmt.Errorf("%w: bad segment", auth.ErrInvalidCredential), http.StatusUnauthorized},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.expected, mapErrorToHTTPStatus(tc.err))
		})
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	respondError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler("payment-service")
	h.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.GET("/health", h.Health)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "payment-service", body.Service)
	assert.Equal(t, "2024-05-01T12:00:00Z", body.Timestamp)
}
