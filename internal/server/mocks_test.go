package server

import (
	"context"
	"errors"

	"github.com/devnagringa/calculadoras/internal/billing"
	"github.com/devnagringa/calculadoras/internal/newsletter"
)

type billingMock struct {
	CheckoutFn       func(ctx context.Context, userID, email, productID string, method billing.PaymentMethod) (*billing.CheckoutResult, error)
	ConfirmPaymentFn func(ctx context.Context, provider string, event billing.WebhookEvent) (*billing.Purchase, error)
	CreditsFn        func(ctx context.Context, userID string) (int, error)
}

func (m *billingMock) Checkout(ctx context.Context, userID, email, productID string, method billing.PaymentMethod) (*billing.CheckoutResult, error) {
	if m.CheckoutFn == nil {
		return nil, errors.New("CheckoutFn not set")
	}
	return m.CheckoutFn(ctx, userID, email, productID, method)
}

func (m *billingMock) ConfirmPayment(ctx context.Context, provider string, event billing.WebhookEvent) (*billing.Purchase, error) {
	if m.ConfirmPaymentFn == nil {
		return nil, errors.New("ConfirmPaymentFn not set")
	}
	return m.ConfirmPaymentFn(ctx, provider, event)
}

func (m *billingMock) Credits(ctx context.Context, userID string) (int, error) {
	if m.CreditsFn == nil {
		return 0, errors.New("CreditsFn not set")
	}
	return m.CreditsFn(ctx, userID)
}

type newsletterMock struct {
	SubscribeFn func(ctx context.Context, email, name string) (*newsletter.Subscriber, bool, error)
	ConfirmFn   func(ctx context.Context, token string) (*newsletter.Subscriber, error)
}

func (m *newsletterMock) Subscribe(ctx context.Context, email, name string) (*newsletter.Subscriber, bool, error) {
	if m.SubscribeFn == nil {
		return nil, false, errors.New("SubscribeFn not set")
	}
	return m.SubscribeFn(ctx, email, name)
}

func (m *newsletterMock) Confirm(ctx context.Context, token string) (*newsletter.Subscriber, error) {
	if m.ConfirmFn == nil {
		return nil, errors.New("ConfirmFn not set")
	}
	return m.ConfirmFn(ctx, token)
}
