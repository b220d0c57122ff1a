package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Charge is what we ask a provider to collect
type Charge struct {
	Reference     string
	Amount        decimal.Decimal
	Method        PaymentMethod
	Description   string
	CustomerEmail string
}

// Checkout is the provider's answer to a charge
type Checkout struct {
	ExternalID string
	PaymentURL string
	PixCode    string
	ExpiresAt  time.Time
}

// Gateway creates payments at a provider
type Gateway interface {
	Name() string
	CreatePayment(ctx context.Context, charge Charge) (*Checkout, error)
}

// HTTPGateway talks JSON to a payment provider's REST API
type HTTPGateway struct {
	Provider string
	BaseURL  string
	APIKey   string
	Client   *http.Client
}

// NewHTTPGateway creates a gateway with a client bounded by timeout
func NewHTTPGateway(provider, baseURL, apiKey string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		Provider: provider,
		BaseURL:  strings.TrimRight(baseURL, "/"),
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Name() string { return g.Provider }

type paymentRequest struct {
	Reference   string `json:"reference"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	Description string `json:"description"`
	Email       string `json:"email,omitempty"`
}

type paymentResponse struct {
	ID         string    `json:"id"`
	PaymentURL string    `json:"payment_url"`
	PixCode    string    `json:"pix_code"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type providerError struct {
	Message string `json:"message"`
}

// CreatePayment posts the charge to /v1/payments
func (g *HTTPGateway) CreatePayment(ctx context.Context, charge Charge) (*Checkout, error) {
	body, err := json.Marshal(paymentRequest{
		Reference:   charge.Reference,
		Amount:      charge.Amount.StringFixed(2),
		Currency:    "BRL",
		Method:      string(charge.Method),
		Description: charge.Description,
		Email:       charge.CustomerEmail,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/payments", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", charge.Reference)
	if g.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, &PaymentError{Provider: g.Provider, Message: "não foi possível contatar o provedor de pagamento", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &PaymentError{Provider: g.Provider, StatusCode: resp.StatusCode, Message: "resposta incompleta do provedor", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var pe providerError
		msg := "pagamento recusado"
		if json.Unmarshal(data, &pe) == nil && pe.Message != "" {
			msg = pe.Message
		}
		return nil, &PaymentError{Provider: g.Provider, StatusCode: resp.StatusCode, Message: msg}
	}

	var pr paymentResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, &PaymentError{Provider: g.Provider, StatusCode: resp.StatusCode, Message: "resposta inválida do provedor", Cause: err}
	}
	if pr.ID == "" {
		return nil, &PaymentError{Provider: g.Provider, StatusCode: resp.StatusCode, Message: "provedor não retornou o identificador do pagamento"}
	}

	return &Checkout{
		ExternalID: pr.ID,
		PaymentURL: pr.PaymentURL,
		PixCode:    pr.PixCode,
		ExpiresAt:  pr.ExpiresAt,
	}, nil
}
