package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"payment/internal/app"
	"payment/internal/auth"
	"payment/internal/domain"
	"payment/internal/handler"
	"payment/internal/metrics"
	"payment/internal/service"
)

const testSecret = "test-secret"

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments []domain.Payment

	// Counters for verification
	AppendCallCount int32
	ListCallCount   int32

	// Error injection
	AppendError error
	ListError   error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) Append(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.AppendCallCount, 1)
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *MockPaymentRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.Payment, 0)
	for i := range m.payments {
		if m.payments[i].UserID == userID {
			payment := m.payments[i]
			result = append(result, &payment)
		}
	}
	return result, nil
}

// CountPayments returns the number of stored payments for test assertions.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// TEST SERVER
// ──────────────────────────────────────────────

// testServer bundles a router with the state handles behind it.
type testServer struct {
	router  *gin.Engine
	repo    *MockPaymentRepository
	metrics *metrics.Metrics
	service *service.PaymentService
}

func newTestServer(t *testing.T, authCfg auth.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMockPaymentRepository()
	m := metrics.New()
	paymentService := service.NewPaymentService(repo, nil, nil)
	t.Cleanup(paymentService.Close)

	router := app.NewRouter(app.RouterDeps{
		PaymentHandler: handler.NewPaymentHandler(paymentService),
		HealthHandler:  handler.NewHealthHandler("payment-service"),
		Extractor:      auth.NewExtractor(authCfg),
		Metrics:        m,
	})

	return &testServer{router: router, repo: repo, metrics: m, service: paymentService}
}

// bearerFor returns an Authorization header value for userID signed with secret.
func bearerFor(t *testing.T, userID int64, secret string) string {
	t.Helper()
	return bearerWithClaims(t, jwt.MapClaims{"sub": userID}, secret)
}

func bearerWithClaims(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + tokenString
}
