package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payment/internal/domain"
)

func newPayment(id string, userID int64) *domain.Payment {
	return &domain.Payment{
		ID:        id,
		OrderID:   1,
		UserID:    userID,
		Amount:    10,
		Currency:  domain.DefaultCurrency,
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
}

func TestListByOwner_EmptyStore(t *testing.T) {
	repo := NewPaymentRepository()

	payments, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, payments)
	assert.Empty(t, payments)
}

func TestListByOwner_FiltersAndKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	require.NoError(t, repo.Append(ctx, newPayment("a-1", 1)))
	require.NoError(t, repo.Append(ctx, newPayment("b-1", 2)))
	require.NoError(t, repo.Append(ctx, newPayment("a-2", 1)))
	require.NoError(t, repo.Append(ctx, newPayment("b-2", 2)))
	require.NoError(t, repo.Append(ctx, newPayment("a-3", 1)))

	payments, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "a-1", payments[0].ID)
	assert.Equal(t, "a-2", payments[1].ID)
	assert.Equal(t, "a-3", payments[2].ID)

	payments, err = repo.ListByOwner(ctx, 2)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, int64(2), p.UserID)
	}

	assert.Equal(t, 5, repo.Len())
}

func TestStoredPaymentsAreImmutable(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	original := newPayment("p-1", 1)
	require.NoError(t, repo.Append(ctx, original))

	// Mutating the caller's value after Append must not leak into the store.
	original.Amount = 999

	payments, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, 10.0, payments[0].Amount)

	// Neither may mutating a listed value.
	payments[0].Status = domain.PaymentStatusRefunded

	payments, err = repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payments[0].Status)
}

func TestConcurrentAppendAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	const writers = 10
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = repo.Append(ctx, newPayment(fmt.Sprintf("%d-%d", userID, i), userID))
				_, _ = repo.ListByOwner(ctx, userID)
			}
		}(int64(w))
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, repo.Len())

	for w := 0; w < writers; w++ {
		payments, err := repo.ListByOwner(ctx, int64(w))
		require.NoError(t, err)
		require.Len(t, payments, perWriter)
		// Each writer appends sequentially, so its own payments stay ordered.
		for i, p := range payments {
			assert.Equal(t, fmt.Sprintf("%d-%d", w, i), p.ID)
		}
	}
}
