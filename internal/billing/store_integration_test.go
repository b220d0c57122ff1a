//go:build integration
// +build integration

package billing

/*
	Para rodar: go test -tags=integration -v ./internal/billing -count=1
*/

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/devnagringa/calculadoras/internal/database"
)

func startPostgres(t *testing.T) *GormStore {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("billing"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pg) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := NewGormStore(db)
	require.NoError(t, store.Migrate(ctx))
	return store
}

// Exercita: produto -> compra pendente -> webhook pago (2x) -> créditos -> expiração
func TestGormStore_Integration_PurchaseLifecycle(t *testing.T) {
	store := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProduct(ctx, &Product{ID: "pack-5", Name: "Pack", Price: decimal.RequireFromString("29.90"), Credits: 5, Active: true}))

	product, err := store.GetProduct(ctx, "pack-5")
	require.NoError(t, err)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("29.90")))

	_, err = store.GetProduct(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	purchase := &Purchase{UserID: "u1", ProductID: "pack-5", Amount: product.Price, Credits: 5, Method: MethodPix, Provider: "fakepay", ExternalID: "pi_1", Status: StatusPending}
	require.NoError(t, store.CreatePurchase(ctx, purchase))
	assert.NotZero(t, purchase.ID)

	dup := *purchase
	dup.ID = 0
	assert.ErrorIs(t, store.CreatePurchase(ctx, &dup), ErrDuplicatePurchase)

	var wg sync.WaitGroup
	changedCount := 0
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, changed, err := store.MarkPaid(ctx, "fakepay", "pi_1", time.Now())
			assert.NoError(t, err)
			if changed {
				mu.Lock()
				changedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, changedCount, "only one webhook settles the purchase")

	credits, err := store.Credits(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, credits)

	second := &Purchase{UserID: "u1", ProductID: "pack-5", Amount: product.Price, Credits: 5, Method: MethodCard, Provider: "fakepay", ExternalID: "pi_2", Status: StatusPending}
	require.NoError(t, store.CreatePurchase(ctx, second))
	_, changed, err := store.MarkPaid(ctx, "fakepay", "pi_2", time.Now())
	require.NoError(t, err)
	assert.True(t, changed)

	credits, err = store.Credits(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, credits, "balances accumulate")

	stale := &Purchase{UserID: "u2", ProductID: "pack-5", Amount: product.Price, Credits: 5, Method: MethodPix, Provider: "fakepay", ExternalID: "pi_3", Status: StatusPending}
	require.NoError(t, store.CreatePurchase(ctx, stale))
	n, err := store.ExpirePending(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "paid purchases are not expired")

	expired, err := store.MarkExpired(ctx, "fakepay", "pi_1")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, expired.Status)

	credits, err = store.Credits(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, credits)
}
