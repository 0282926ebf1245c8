package postgres

import (
	"context"
	"fmt"
)

const paymentsSchema = `
	CREATE TABLE IF NOT EXISTS payments (
		seq        BIGSERIAL PRIMARY KEY,
		id         UUID NOT NULL UNIQUE,
		order_id   BIGINT NOT NULL,
		user_id    BIGINT NOT NULL,
		amount     DOUBLE PRECISION NOT NULL CHECK (amount > 0),
		currency   TEXT NOT NULL,
		status     VARCHAR(20) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id, seq);
`

// EnsureSchema creates the payments table if it does not exist yet.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.ExecContext(ctx, paymentsSchema); err != nil {
		return fmt.Errorf("failed to create payments schema: %w", err)
	}
	return nil
}
