package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportPack = Product{
	ID:      "pack-5",
	Name:    "5 relatórios detalhados",
	Price:   decimal.RequireFromString("29.90"),
	Credits: 5,
	Active:  true,
}

func newTestService(t *testing.T) (*Service, *MemoryStore, *gatewayMock, *logtest.Hook) {
	t.Helper()
	store := NewMemoryStore(reportPack, Product{ID: "old", Name: "Antigo", Price: decimal.NewFromInt(10), Credits: 1})
	gw := &gatewayMock{
		CreatePaymentFn: func(_ context.Context, c Charge) (*Checkout, error) {
			return &Checkout{ExternalID: "pay_" + c.Reference[:8], PaymentURL: "https://pay.example/" + c.Reference}, nil
		},
	}
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return NewService(store, gw, log, time.Hour), store, gw, hook
}

func TestService_Checkout(t *testing.T) {
	svc, store, gw, hook := newTestService(t)

	var charged Charge
	gw.CreatePaymentFn = func(_ context.Context, c Charge) (*Checkout, error) {
		charged = c
		return &Checkout{ExternalID: "pay_1", PaymentURL: "https://pay.example/1", PixCode: "000201..."}, nil
	}

	res, err := svc.Checkout(context.Background(), "user-1", "ana@example.com", "pack-5", MethodPix)
	require.NoError(t, err)

	assert.Equal(t, "pay_1", res.PaymentIntentID)
	assert.Equal(t, "https://pay.example/1", res.PaymentURL)
	assert.Equal(t, "000201...", res.PixCode)
	assert.True(t, charged.Amount.Equal(reportPack.Price))
	assert.Equal(t, MethodPix, charged.Method)
	assert.NotEmpty(t, charged.Reference)

	purchases := store.Purchases()
	require.Len(t, purchases, 1)
	assert.Equal(t, StatusPending, purchases[0].Status)
	assert.Equal(t, "fakepay", purchases[0].Provider)
	assert.Equal(t, 5, purchases[0].Credits)
	assert.Equal(t, "checkout created", hook.LastEntry().Message)
}

func TestService_Checkout_Errors(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		method    PaymentMethod
		gatewayFn func(context.Context, Charge) (*Checkout, error)
		want      error
	}{
		{name: "unknown product", productID: "nope", method: MethodCard, want: ErrNotFound},
		{name: "inactive product", productID: "old", method: MethodCard, want: ErrProductUnavailable},
		{name: "bad method", productID: "pack-5", method: "boleto", want: ErrInvalidMethod},
		{
			name:      "provider refuses",
			productID: "pack-5",
			method:    MethodCard,
			gatewayFn: func(context.Context, Charge) (*Checkout, error) {
				return nil, &PaymentError{Provider: "fakepay", StatusCode: 402, Message: "cartão recusado"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, gw, _ := newTestService(t)
			if tt.gatewayFn != nil {
				gw.CreatePaymentFn = tt.gatewayFn
			}

			_, err := svc.Checkout(context.Background(), "user-1", "", tt.productID, tt.method)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				var pe *PaymentError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, "cartão recusado", pe.Message)
			}
			assert.Empty(t, store.Purchases(), "nothing is recorded on failure")
		})
	}
}

func TestService_ConfirmPayment_Idempotent(t *testing.T) {
	svc, _, _, hook := newTestService(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, "user-1", "", "pack-5", MethodCard)
	require.NoError(t, err)

	event := WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookPaid}
	first, err := svc.ConfirmPayment(ctx, "fakepay", event)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, first.Status)
	require.NotNil(t, first.PaidAt)

	second, err := svc.ConfirmPayment(ctx, "fakepay", event)
	require.NoError(t, err, "replays are not errors")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "duplicate paid webhook ignored", hook.LastEntry().Message)

	credits, err := svc.Credits(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, credits, "credits granted once")
}

func TestService_ConfirmPayment_ConcurrentReplays(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, "user-2", "", "pack-5", MethodPix)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ConfirmPayment(ctx, "fakepay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookPaid})
		}()
	}
	wg.Wait()

	credits, err := svc.Credits(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, 5, credits)
}

func TestService_ConfirmPayment_Statuses(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, "user-1", "", "pack-5", MethodPix)
	require.NoError(t, err)

	ignored, err := svc.ConfirmPayment(ctx, "fakepay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: "processing"})
	require.NoError(t, err)
	assert.Nil(t, ignored)

	expired, err := svc.ConfirmPayment(ctx, "fakepay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookCanceled})
	require.NoError(t, err)
	assert.Equal(t, StatusExpired, expired.Status)

	// A late payment still settles the purchase
	paid, err := svc.ConfirmPayment(ctx, "fakepay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookPaid})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)

	again, err := svc.ConfirmPayment(ctx, "fakepay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookExpired})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, again.Status, "paid purchases never expire")
}

func TestService_ConfirmPayment_Unknown(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ConfirmPayment(context.Background(), "fakepay", WebhookEvent{ExternalID: "ghost", Status: WebhookPaid})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ConfirmPayment(context.Background(), "fakepay", WebhookEvent{Status: WebhookPaid})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ConfirmPayment_ProviderScoped(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Checkout(ctx, "user-1", "", "pack-5", MethodPix)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, "otherpay", WebhookEvent{ExternalID: res.PaymentIntentID, Status: WebhookPaid})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ExpireStale(t *testing.T) {
	svc, store, _, _ := newTestService(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }
	_, err := svc.Checkout(ctx, "user-1", "", "pack-5", MethodPix)
	require.NoError(t, err)

	store.now = func() time.Time { return start.Add(50 * time.Minute) }
	_, err = svc.Checkout(ctx, "user-1", "", "pack-5", MethodPix)
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(90 * time.Minute) }
	n, err := svc.ExpireStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	purchases := store.Purchases()
	assert.Equal(t, StatusExpired, purchases[0].Status)
	assert.Equal(t, StatusPending, purchases[1].Status)
}

func TestPaymentError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &PaymentError{Provider: "fakepay", StatusCode: 502, Message: "indisponível", Cause: cause}

	assert.Equal(t, "fakepay: indisponível (status 502): connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}
