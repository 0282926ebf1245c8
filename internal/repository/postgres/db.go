package postgres

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the payment store needs.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var _ Querier = (*sql.DB)(nil)
