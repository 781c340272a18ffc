package contracts

import (
	"context"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
)

// ScanFilter narrows a table scan. The zero value scans every row.
type ScanFilter struct {
	Category *string
	Limit    int // 0 means unbounded
	Offset   int
}

// ProductStore is the Record Store. Every write also persists the aggregate's
// pending domain events to the outbox in the same commit.
type ProductStore interface {
	// Get returns domain.ErrProductNotFound when no row has the id.
	Get(ctx context.Context, id string) (*domain.Product, error)

	// Scan returns rows ordered by product id.
	Scan(ctx context.Context, filter ScanFilter) ([]*domain.Product, error)

	// Insert writes the whole record.
	Insert(ctx context.Context, p *domain.Product) error

	// Update writes the dirty fields of p plus updated_at.
	Update(ctx context.Context, p *domain.Product) error

	// UpdateIfStock writes the dirty fields of p only if the stored stock still
	// equals expectedStock, otherwise domain.ErrConcurrentModification.
	UpdateIfStock(ctx context.Context, p *domain.Product, expectedStock int64) error

	// Delete removes the row in a single conditional write and returns
	// domain.ErrProductNotFound when nothing was deleted.
	Delete(ctx context.Context, id string, events ...domain.DomainEvent) error
}
