package list_products

import (
	"context"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
)

// MaxLimit caps an explicit page size. A zero limit still scans every row.
const MaxLimit = 1000

// Query narrows a listing. The zero value lists the whole table.
type Query struct {
	Category *string
	Limit    int
	Offset   int
}

type Handler struct {
	store contracts.ProductStore
}

func NewHandler(s contracts.ProductStore) *Handler {
	return &Handler{store: s}
}

// Execute returns the matching products ordered by id. An empty result is
// not an error; callers decide how to present it.
func (h *Handler) Execute(ctx context.Context, q Query) ([]*dto.ProductDTO, error) {
	if q.Limit < 0 || q.Limit > MaxLimit {
		return nil, domain.Invalid("limit must be between 0 and %d", MaxLimit)
	}
	if q.Offset < 0 {
		return nil, domain.Invalid("offset cannot be negative")
	}

	items, err := h.store.Scan(ctx, contracts.ScanFilter{
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProductDTO, 0, len(items))
	for _, p := range items {
		out = append(out, dto.FromProduct(p))
	}
	return out, nil
}
