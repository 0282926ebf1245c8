package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"payment/internal/config"
	"payment/internal/repository"
	"payment/internal/repository/memory"
	"payment/internal/repository/postgres"
)

// NewPaymentRepository builds the payment store selected by cfg.Store.Driver.
// The returned close function releases the backend and is never nil.
func NewPaymentRepository(ctx context.Context, cfg *config.Config, nrApp *newrelic.Application) (repository.PaymentRepository, func() error, error) {
	switch cfg.Store.Driver {
	case "", config.StoreDriverMemory:
		return memory.NewPaymentRepository(), func() error { return nil }, nil

	case config.StoreDriverPostgres:
		db, err := NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPaymentRepository(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
