package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
)

// MemoryStore is an in-process Record Store used for local runs and tests.
// It honours the same conditional-write semantics as SpannerStore.
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[string]memoryRow
	events []domain.DomainEvent
}

type memoryRow struct {
	id, name, description, category string
	price, stock                    int64
	createdAt, updatedAt            time.Time
}

var _ contracts.ProductStore = (*MemoryStore)(nil)

var errDuplicateID = errors.New("product id already exists")

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]memoryRow)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return r.product(), nil
}

func (s *MemoryStore) Scan(_ context.Context, filter contracts.ScanFilter) ([]*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.rows))
	for id, r := range s.rows {
		if filter.Category != nil && r.category != *filter.Category {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if filter.Offset > 0 {
		if filter.Offset >= len(ids) {
			ids = nil
		} else {
			ids = ids[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(ids) > filter.Limit {
		ids = ids[:filter.Limit]
	}

	out := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.rows[id].product())
	}
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rows[p.ID()]; exists {
		return domain.E(domain.KindDownstream, "memory.Insert", errDuplicateID)
	}
	s.rows[p.ID()] = rowOf(p)
	s.flush(p)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Changes().HasChanges() && len(p.DomainEvents()) == 0 {
		return nil
	}
	if _, ok := s.rows[p.ID()]; !ok {
		return domain.E(domain.KindNotFound, "memory.Update", domain.ErrProductNotFound)
	}
	s.rows[p.ID()] = rowOf(p)
	s.flush(p)
	return nil
}

func (s *MemoryStore) UpdateIfStock(_ context.Context, p *domain.Product, expectedStock int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !p.Changes().HasChanges() && len(p.DomainEvents()) == 0 {
		return nil
	}
	current, ok := s.rows[p.ID()]
	if !ok || current.stock != expectedStock {
		return domain.ErrConcurrentModification
	}
	s.rows[p.ID()] = rowOf(p)
	s.flush(p)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string, events ...domain.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(s.rows, id)
	s.events = append(s.events, events...)
	return nil
}

// Events returns every event committed so far, oldest first.
func (s *MemoryStore) Events() []domain.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DomainEvent(nil), s.events...)
}

// SetStock overwrites a row's stock, simulating a concurrent writer.
func (s *MemoryStore) SetStock(id string, stock int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rows[id]; ok {
		r.stock = stock
		s.rows[id] = r
	}
}

func (s *MemoryStore) flush(p *domain.Product) {
	s.events = append(s.events, p.DomainEvents()...)
	p.ClearEvents()
	p.Changes().Clear()
}

func rowOf(p *domain.Product) memoryRow {
	return memoryRow{
		id:          p.ID(),
		name:        p.ProductName(),
		description: p.Description(),
		category:    p.Category(),
		price:       p.Price(),
		stock:       p.Stock(),
		createdAt:   p.CreatedAt(),
		updatedAt:   p.UpdatedAt(),
	}
}

func (r memoryRow) product() *domain.Product {
	return domain.ReconstructProduct(r.id, r.name, r.description, r.category, r.price, r.stock,
		r.createdAt, r.updatedAt)
}
