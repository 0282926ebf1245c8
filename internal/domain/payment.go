package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// DefaultCurrency is used when a payment request carries no currency code.
const DefaultCurrency = "USD"

// Payment represents a simulated payment for an order.
// A payment is never modified once it has been stored.
type Payment struct {
	ID        string
	OrderID   int64
	UserID    int64
	Amount    float64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
}
