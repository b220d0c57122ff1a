package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists products, purchases and credit balances
type Store interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreatePurchase(ctx context.Context, p *Purchase) error
	// MarkPaid moves the purchase to paid and credits its user in one step.
	// The bool reports whether this call made the change; a purchase that is
	// already paid is returned unchanged with false.
	MarkPaid(ctx context.Context, provider, externalID string, paidAt time.Time) (*Purchase, bool, error)
	// MarkExpired expires a pending purchase; paid purchases are left alone
	MarkExpired(ctx context.Context, provider, externalID string) (*Purchase, error)
	ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error)
	Credits(ctx context.Context, userID string) (int, error)
}

// GormStore is the postgres Store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the billing tables
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Product{}, &Purchase{}, &CreditBalance{}); err != nil {
		return fmt.Errorf("billing migration failed: %w", err)
	}
	return nil
}

// SaveProduct creates or replaces a product
func (s *GormStore) SaveProduct(ctx context.Context, p *Product) error {
	return s.db.WithContext(ctx).Save(p).Error
}

func (s *GormStore) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &p, nil
}

func (s *GormStore) CreatePurchase(ctx context.Context, p *Purchase) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePurchase
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

func (s *GormStore) MarkPaid(ctx context.Context, provider, externalID string, paidAt time.Time) (*Purchase, bool, error) {
	var (
		purchase Purchase
		changed  bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPurchase(tx, provider, externalID, &purchase); err != nil {
			return err
		}
		if purchase.Status == StatusPaid {
			return nil
		}

		purchase.Status = StatusPaid
		purchase.PaidAt = &paidAt
		if err := tx.Model(&purchase).Updates(map[string]interface{}{"status": StatusPaid, "paid_at": paidAt}).Error; err != nil {
			return fmt.Errorf("update purchase: %w", err)
		}

		balance := CreditBalance{UserID: purchase.UserID, Credits: purchase.Credits, UpdatedAt: paidAt}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"credits":    gorm.Expr("credit_balances.credits + ?", purchase.Credits),
				"updated_at": paidAt,
			}),
		}).Create(&balance).Error
		if err != nil {
			return fmt.Errorf("grant credits: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &purchase, changed, nil
}

func (s *GormStore) MarkExpired(ctx context.Context, provider, externalID string) (*Purchase, error) {
	var purchase Purchase
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPurchase(tx, provider, externalID, &purchase); err != nil {
			return err
		}
		if purchase.Status != StatusPending {
			return nil
		}
		purchase.Status = StatusExpired
		return tx.Model(&purchase).Update("status", StatusExpired).Error
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (s *GormStore) ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&Purchase{}).
		Where("status = ? AND created_at < ?", StatusPending, createdBefore).
		Update("status", StatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire pending purchases: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *GormStore) Credits(ctx context.Context, userID string) (int, error) {
	var balance CreditBalance
	err := s.db.WithContext(ctx).First(&balance, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get credits: %w", err)
	}
	return balance.Credits, nil
}

// lockPurchase loads a purchase for update inside tx
func lockPurchase(tx *gorm.DB, provider, externalID string, p *Purchase) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider = ? AND external_id = ?", provider, externalID).
		First(p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load purchase %s/%s: %w", provider, externalID, err)
	}
	return nil
}
