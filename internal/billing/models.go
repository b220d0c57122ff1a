package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus is the lifecycle state of a purchase
type PurchaseStatus string

const (
	StatusPending PurchaseStatus = "pending"
	StatusPaid    PurchaseStatus = "paid"
	StatusExpired PurchaseStatus = "expired"
)

// PaymentMethod is how the customer pays
type PaymentMethod string

const (
	MethodPix  PaymentMethod = "pix"
	MethodCard PaymentMethod = "card"
)

// ParsePaymentMethod accepts "pix" or "card"
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case MethodPix, MethodCard:
		return PaymentMethod(s), true
	}
	return "", false
}

// Product is something sold for credits, e.g. a pack of detailed reports
type Product struct {
	ID        string          `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Credits   int             `gorm:"not null" json:"credits"`
	Active    bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Purchase records one checkout. Provider and ExternalID identify the
// payment at the provider and are what webhooks refer to.
type Purchase struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     string          `gorm:"index;not null" json:"userId"`
	ProductID  string          `gorm:"not null" json:"productId"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Credits    int             `gorm:"not null" json:"credits"`
	Method     PaymentMethod   `gorm:"not null" json:"method"`
	Provider   string          `gorm:"uniqueIndex:idx_provider_external;not null" json:"provider"`
	ExternalID string          `gorm:"uniqueIndex:idx_provider_external;not null" json:"externalId"`
	Status     PurchaseStatus  `gorm:"index;not null" json:"status"`
	PaidAt     *time.Time      `json:"paidAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CreditBalance is the running number of credits a user owns
type CreditBalance struct {
	UserID    string    `gorm:"primaryKey" json:"userId"`
	Credits   int       `gorm:"not null" json:"credits"`
	UpdatedAt time.Time `json:"updatedAt"`
}
