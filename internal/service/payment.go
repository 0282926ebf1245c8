package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"payment/internal/domain"
	"payment/internal/repository"
)

const publishTimeout = 5 * time.Second

// EventPublisher announces stored payments to other services.
type EventPublisher interface {
	PublishPaymentCreated(ctx context.Context, payment *domain.Payment) error
}

// PaymentService handles payment operations.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	publisher   EventPublisher
	logger      *zap.Logger
	now         func() time.Time

	// inflight tracks asynchronous event publishes.
	inflight sync.WaitGroup
}

// NewPaymentService creates a new PaymentService. publisher may be nil.
func NewPaymentService(paymentRepo repository.PaymentRepository, publisher EventPublisher, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// CreatePaymentRequest contains the parameters for creating a payment.
type CreatePaymentRequest struct {
	UserID   int64
	OrderID  int64
	Amount   float64
	Currency string
}

// CreatePayment simulates a payment for an order and stores it.
// There is no provider call: every accepted payment is completed immediately.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	// Written as a negation so NaN is rejected too.
	if !(req.Amount > 0) {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		OrderID:   req.OrderID,
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: s.now().UTC(),
	}

	if err := s.paymentRepo.Append(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}

	s.logger.Info("Created payment",
		zap.String("payment_id", payment.ID),
		zap.Int64("order_id", payment.OrderID),
		zap.Int64("user_id", payment.UserID),
		zap.String("amount", fmt.Sprintf("%.2f", payment.Amount)),
		zap.String("currency", payment.Currency))

	s.publishCreated(ctx, *payment)

	return payment, nil
}

// ListPayments returns the payments of a user in creation order.
func (s *PaymentService) ListPayments(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	return s.paymentRepo.ListByOwner(ctx, userID)
}

// Close waits for in-flight event publishes to finish.
func (s *PaymentService) Close() {
	s.inflight.Wait()
}

// publishCreated sends the payment.created event without blocking the caller.
// Failures are logged only; the payment is already stored. The publish outlives
// the request, so only the New Relic transaction is carried over from ctx.
func (s *PaymentService) publishCreated(ctx context.Context, payment domain.Payment) {
	if s.publisher == nil {
		return
	}

	txn := newrelic.FromContext(ctx).NewGoroutine()

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		ctx := context.Background()
		if txn != nil {
			ctx = newrelic.NewContext(ctx, txn)
		}
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()

		if err := s.publisher.PublishPaymentCreated(ctx, &payment); err != nil {
			s.logger.Warn("Failed to publish payment.created",
				zap.String("payment_id", payment.ID),
				zap.Error(err))
			return
		}
		s.logger.Debug("Published payment.created", zap.String("payment_id", payment.ID))
	}()
}
