package newsletter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Store persists subscribers
type Store interface {
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)
	Create(ctx context.Context, s *Subscriber) error
	Confirm(ctx context.Context, token string, at time.Time) (*Subscriber, error)
}

// GormStore keeps subscribers in postgres
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the subscribers table
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Subscriber{}); err != nil {
		return fmt.Errorf("migrate newsletter: %w", err)
	}
	return nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (*Subscriber, error) {
	var sub Subscriber
	err := s.db.WithContext(ctx).First(&sub, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find subscriber: %w", err)
	}
	return &sub, nil
}

func (s *GormStore) Create(ctx context.Context, sub *Subscriber) error {
	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

// Confirm sets ConfirmedAt the first time a token is used
func (s *GormStore) Confirm(ctx context.Context, token string, at time.Time) (*Subscriber, error) {
	var sub Subscriber
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&sub, "token = ?", token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find subscriber: %w", err)
		}
		if sub.Confirmed() {
			return nil
		}
		sub.ConfirmedAt = &at
		return tx.Model(&sub).Update("confirmed_at", at).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// MemoryStore keeps subscribers in process memory
type MemoryStore struct {
	mu     sync.Mutex
	subs   []*Subscriber
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) FindByEmail(_ context.Context, email string) (*Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Create(_ context.Context, sub *Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.Email == sub.Email {
			return fmt.Errorf("create subscriber: %s already subscribed", sub.Email)
		}
	}
	m.nextID++
	sub.ID = m.nextID
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	cp := *sub
	m.subs = append(m.subs, &cp)
	return nil
}

func (m *MemoryStore) Confirm(_ context.Context, token string, at time.Time) (*Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.Token != token {
			continue
		}
		if !s.Confirmed() {
			s.ConfirmedAt = &at
		}
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}
