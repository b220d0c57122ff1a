// Package newsletter manages double opt-in subscriptions.
package newsletter

import (
	"errors"
	"time"
)

var (
	ErrInvalidEmail = errors.New("e-mail inválido")
	ErrNotFound     = errors.New("inscrição não encontrada")
)

// Subscriber is confirmed once ConfirmedAt is set
type Subscriber struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Name        string     `json:"name"`
	Token       string     `gorm:"uniqueIndex;not null" json:"-"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Confirmed reports whether the subscriber clicked the confirmation link
func (s *Subscriber) Confirmed() bool {
	return s.ConfirmedAt != nil
}
