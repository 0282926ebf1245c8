package memory

import (
	"context"
	"sync"

	"payment/internal/domain"
	"payment/internal/repository"
)

// PaymentRepository is an in-process implementation of repository.PaymentRepository.
// All payments live in a single slice guarded by one mutex; data is lost on restart.
type PaymentRepository struct {
	mu       sync.Mutex
	payments []domain.Payment
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository creates an empty in-memory payment repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make([]domain.Payment, 0),
	}
}

// Append stores a copy of payment.
func (r *PaymentRepository) Append(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments = append(r.payments, *payment)
	return nil
}

// ListByOwner scans the whole store for payments belonging to userID.
func (r *PaymentRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Payment, 0)
	for i := range r.payments {
		if r.payments[i].UserID == userID {
			// Return a copy to keep stored payments immutable.
			payment := r.payments[i]
			result = append(result, &payment)
		}
	}

	return result, nil
}

// Len returns the number of stored payments.
func (r *PaymentRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payments)
}
