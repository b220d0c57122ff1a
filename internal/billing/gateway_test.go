package billing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGateway_CreatePayment(t *testing.T) {
	var got paymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		assert.Equal(t, "ref-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","payment_url":"https://pay.example/pi_123","pix_code":"000201","expires_at":"2025-03-01T12:30:00Z"}`))
	}))
	defer srv.Close()

	gw := NewHTTPGateway("fakepay", srv.URL+"/", "sk_test", time.Second)
	checkout, err := gw.CreatePayment(context.Background(), Charge{
		Reference: "ref-1",
		Amount:    decimal.RequireFromString("29.9"),
		Method:    MethodPix,
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", checkout.ExternalID)
	assert.Equal(t, "000201", checkout.PixCode)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC), checkout.ExpiresAt)
	assert.Equal(t, "29.90", got.Amount)
	assert.Equal(t, "BRL", got.Currency)
	assert.Equal(t, "pix", got.Method)
}

func TestHTTPGateway_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"provider message", http.StatusPaymentRequired, `{"message":"cartão recusado"}`, "cartão recusado"},
		{"no message", http.StatusInternalServerError, `oops`, "pagamento recusado"},
		{"missing id", http.StatusOK, `{"payment_url":"x"}`, "provedor não retornou o identificador do pagamento"},
		{"invalid json", http.StatusOK, `{`, "resposta inválida do provedor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPGateway("fakepay", srv.URL, "", time.Second).CreatePayment(context.Background(), Charge{Reference: "r"})
			require.Error(t, err)

			var pe *PaymentError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.message, pe.Message)
			assert.Equal(t, tt.status, pe.StatusCode)
		})
	}
}

func TestHTTPGateway_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPGateway("fakepay", url, "", time.Second).CreatePayment(context.Background(), Charge{Reference: "r"})

	var pe *PaymentError
	require.True(t, errors.As(err, &pe))
	assert.Zero(t, pe.StatusCode)
	assert.NotNil(t, pe.Cause)
}

func TestHTTPGateway_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPGateway("fakepay", srv.URL, "", 5*time.Second).CreatePayment(ctx, Charge{Reference: "r"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
