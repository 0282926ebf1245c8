package postgres

import (
	"context"
	"database/sql"

	"payment/internal/domain"
	"payment/internal/repository"
)

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
// It only ever inserts and selects; the seq column preserves insertion order.
type PaymentRepository struct {
	q Querier
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// Append persists a new payment.
func (r *PaymentRepository) Append(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, user_id, amount, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.UserID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.CreatedAt,
	)

	return err
}

// ListByOwner retrieves all payments of a user in insertion order.
func (r *PaymentRepository) ListByOwner(ctx context.Context, userID int64) ([]*domain.Payment, error) {
	query := `
		SELECT id, order_id, user_id, amount, currency, status, created_at
		FROM payments WHERE user_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.OrderID,
			&payment.UserID,
			&payment.Amount,
			&payment.Currency,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, &payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
