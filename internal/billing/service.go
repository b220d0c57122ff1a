package billing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Webhook statuses understood by ConfirmPayment
const (
	WebhookPaid     = "paid"
	WebhookExpired  = "expired"
	WebhookCanceled = "canceled"
)

// WebhookEvent is the provider notification body
type WebhookEvent struct {
	ExternalID string `json:"externalId"`
	Status     string `json:"status"`
}

// CheckoutResult is returned to the client after a checkout
type CheckoutResult struct {
	PurchaseID      uint   `json:"purchaseId"`
	PaymentURL      string `json:"paymentUrl"`
	PaymentIntentID string `json:"paymentIntentId"`
	PixCode         string `json:"pixCode,omitempty"`
}

// Service sells products for credits
type Service struct {
	store      Store
	gateway    Gateway
	log        logrus.FieldLogger
	pendingTTL time.Duration
	now        func() time.Time
}

// NewService creates a billing service. Pending purchases older than
// pendingTTL are expired by ExpireStale.
func NewService(store Store, gateway Gateway, log logrus.FieldLogger, pendingTTL time.Duration) *Service {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Service{store: store, gateway: gateway, log: log, pendingTTL: pendingTTL, now: time.Now}
}

// Checkout starts a payment for productID and records it as pending
func (s *Service) Checkout(ctx context.Context, userID, email, productID string, method PaymentMethod) (*CheckoutResult, error) {
	if _, ok := ParsePaymentMethod(string(method)); !ok {
		return nil, ErrInvalidMethod
	}
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, ErrProductUnavailable
	}

	checkout, err := s.gateway.CreatePayment(ctx, Charge{
		Reference:     uuid.NewString(),
		Amount:        product.Price,
		Method:        method,
		Description:   product.Name,
		CustomerEmail: email,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	purchase := &Purchase{
		UserID:     userID,
		ProductID:  product.ID,
		Amount:     product.Price,
		Credits:    product.Credits,
		Method:     method,
		Provider:   s.gateway.Name(),
		ExternalID: checkout.ExternalID,
		Status:     StatusPending,
	}
	if err := s.store.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"purchase_id": purchase.ID,
		"user_id":     userID,
		"product_id":  product.ID,
		"method":      method,
	}).Info("checkout created")

	return &CheckoutResult{
		PurchaseID:      purchase.ID,
		PaymentURL:      checkout.PaymentURL,
		PaymentIntentID: checkout.ExternalID,
		PixCode:         checkout.PixCode,
	}, nil
}

// ConfirmPayment applies a provider webhook. Replaying a "paid" event
// returns the stored purchase without granting credits again. Statuses
// other than paid, expired and canceled are ignored with a nil purchase.
func (s *Service) ConfirmPayment(ctx context.Context, provider string, event WebhookEvent) (*Purchase, error) {
	if event.ExternalID == "" {
		return nil, fmt.Errorf("webhook without externalId: %w", ErrNotFound)
	}
	fields := logrus.Fields{"provider": provider, "external_id": event.ExternalID, "status": event.Status}

	switch event.Status {
	case WebhookPaid:
		purchase, changed, err := s.store.MarkPaid(ctx, provider, event.ExternalID, s.now())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.log.WithFields(fields).Warn("webhook for unknown purchase")
			}
			return nil, err
		}
		if changed {
			s.log.WithFields(fields).WithField("credits", purchase.Credits).Info("purchase paid, credits granted")
		} else {
			s.log.WithFields(fields).Info("duplicate paid webhook ignored")
		}
		return purchase, nil
	case WebhookExpired, WebhookCanceled:
		purchase, err := s.store.MarkExpired(ctx, provider, event.ExternalID)
		if err != nil {
			return nil, err
		}
		s.log.WithFields(fields).Info("purchase closed without payment")
		return purchase, nil
	default:
		s.log.WithFields(fields).Debug("webhook status ignored")
		return nil, nil
	}
}

// ExpireStale expires pending purchases older than the pending TTL
func (s *Service) ExpireStale(ctx context.Context) (int64, error) {
	n, err := s.store.ExpirePending(ctx, s.now().Add(-s.pendingTTL))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithField("count", n).Info("stale pending purchases expired")
	}
	return n, nil
}

// Credits returns the user's balance
func (s *Service) Credits(ctx context.Context, userID string) (int, error) {
	return s.store.Credits(ctx, userID)
}
