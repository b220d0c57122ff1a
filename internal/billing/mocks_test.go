package billing

import (
	"context"
	"errors"
	"sync/atomic"
)

type gatewayMock struct {
	NameValue       string
	CreatePaymentFn func(ctx context.Context, charge Charge) (*Checkout, error)
	calls           atomic.Int32
}

func (m *gatewayMock) Name() string {
	if m.NameValue == "" {
		return "fakepay"
	}
	return m.NameValue
}

func (m *gatewayMock) CreatePayment(ctx context.Context, charge Charge) (*Checkout, error) {
	m.calls.Add(1)
	if m.CreatePaymentFn == nil {
		return nil, errors.New("CreatePaymentFn not set")
	}
	return m.CreatePaymentFn(ctx, charge)
}
