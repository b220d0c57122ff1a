package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a product or purchase does not exist
	ErrNotFound = errors.New("not found")
	// ErrProductUnavailable is returned for inactive products
	ErrProductUnavailable = errors.New("product unavailable")
	// ErrInvalidMethod is returned for payment methods other than pix and card
	ErrInvalidMethod = errors.New("invalid payment method")
	// ErrDuplicatePurchase is returned when a provider reuses a payment id
	ErrDuplicatePurchase = errors.New("duplicate purchase")
)

// PaymentError is a failure reported by a payment provider. Message is safe
// to show to the customer.
type PaymentError struct {
	Provider   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *PaymentError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PaymentError) Unwrap() error {
	return e.Cause
}
