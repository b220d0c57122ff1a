package billing

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps billing data in process memory. It backs local runs
// without a database and the package tests.
type MemoryStore struct {
	mu        sync.Mutex
	products  map[string]Product
	purchases []*Purchase
	credits   map[string]int
	nextID    uint
	now       func() time.Time
}

// NewMemoryStore creates a store seeded with products
func NewMemoryStore(products ...Product) *MemoryStore {
	s := &MemoryStore{
		products: make(map[string]Product),
		credits:  make(map[string]int),
		now:      time.Now,
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *MemoryStore) GetProduct(_ context.Context, id string) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreatePurchase(_ context.Context, p *Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(p.Provider, p.ExternalID) != nil {
		return ErrDuplicatePurchase
	}
	s.nextID++
	p.ID = s.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	p.UpdatedAt = p.CreatedAt
	stored := *p
	s.purchases = append(s.purchases, &stored)
	return nil
}

func (s *MemoryStore) MarkPaid(_ context.Context, provider, externalID string, paidAt time.Time) (*Purchase, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(provider, externalID)
	if p == nil {
		return nil, false, ErrNotFound
	}
	if p.Status == StatusPaid {
		copied := *p
		return &copied, false, nil
	}
	p.Status = StatusPaid
	p.PaidAt = &paidAt
	p.UpdatedAt = paidAt
	s.credits[p.UserID] += p.Credits
	copied := *p
	return &copied, true, nil
}

func (s *MemoryStore) MarkExpired(_ context.Context, provider, externalID string) (*Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.find(provider, externalID)
	if p == nil {
		return nil, ErrNotFound
	}
	if p.Status == StatusPending {
		p.Status = StatusExpired
	}
	copied := *p
	return &copied, nil
}

func (s *MemoryStore) ExpirePending(_ context.Context, createdBefore time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.purchases {
		if p.Status == StatusPending && p.CreatedAt.Before(createdBefore) {
			p.Status = StatusExpired
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Credits(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credits[userID], nil
}

// Purchases returns a copy of every stored purchase
func (s *MemoryStore) Purchases() []Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Purchase, len(s.purchases))
	for i, p := range s.purchases {
		out[i] = *p
	}
	return out
}

func (s *MemoryStore) find(provider, externalID string) *Purchase {
	for _, p := range s.purchases {
		if p.Provider == provider && p.ExternalID == externalID {
			return p
		}
	}
	return nil
}
