package restock_product

import (
	"context"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

// Interactor resets a product's stock to a fixed quantity.
type Interactor struct {
	Store    contracts.ProductStore
	Clock    clock.Clock
	Quantity int64
}

// NewInteractor constructs the interactor. A non-positive quantity falls back
// to domain.DefaultRestockQuantity.
func NewInteractor(store contracts.ProductStore, clk clock.Clock, quantity int64) *Interactor {
	if quantity <= 0 {
		quantity = domain.DefaultRestockQuantity
	}
	return &Interactor{Store: store, Clock: clk, Quantity: quantity}
}

func (it *Interactor) Execute(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	if productID == "" {
		return nil, domain.Invalid("product id is required")
	}

	product, err := it.Store.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Restock(it.Quantity, it.Clock.Now()); err != nil {
		return nil, err
	}

	if err := it.Store.Update(ctx, product); err != nil {
		return nil, err
	}

	return dto.FromProduct(product), nil
}
