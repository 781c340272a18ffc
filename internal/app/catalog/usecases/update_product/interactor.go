package update_product

import (
	"context"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

// Request represents the update product request (partial updates allowed).
type Request struct {
	ProductID   string
	ProductName *string
	Description *string
	Category    *string
	Price       *int64
	Stock       *int64
}

// Interactor applies partial updates.
type Interactor struct {
	Store contracts.ProductStore
	Clock clock.Clock
}

func NewInteractor(store contracts.ProductStore, clk clock.Clock) *Interactor {
	return &Interactor{
		Store: store,
		Clock: clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	if req.ProductID == "" {
		return domain.Invalid("product id is required")
	}

	patch := domain.Patch{
		ProductName: req.ProductName,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if patch.IsEmpty() {
		return domain.ErrEmptyUpdate
	}

	// 1. Load aggregate
	product, err := it.Store.Get(ctx, req.ProductID)
	if err != nil {
		return err
	}

	// 2. Domain method marks only the fields whose value changed
	if err := product.ApplyPatch(patch, it.Clock.Now()); err != nil {
		return err
	}

	// 3. Persist dirty fields and the updated event; a no-op patch writes nothing
	return it.Store.Update(ctx, product)
}
