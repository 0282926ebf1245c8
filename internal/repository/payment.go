package repository

import (
	"context"

	"payment/internal/domain"
)

// PaymentRepository defines the storage operations for payments.
// Stores are append-only: a stored payment is never updated or removed.
type PaymentRepository interface {
	// Append adds a payment to the end of the store.
	Append(ctx context.Context, payment *domain.Payment) error

	// ListByOwner returns every payment owned by userID in insertion order.
	// It returns an empty, non-nil slice when the user has no payments.
	ListByOwner(ctx context.Context, userID int64) ([]*domain.Payment, error)
}
