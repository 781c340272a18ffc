package delete_product

import (
	"context"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

// Interactor removes a product with a single conditional delete. There is no
// existence probe: the store reports not-found when nothing was deleted.
type Interactor struct {
	Store contracts.ProductStore
	Clock clock.Clock
}

func NewInteractor(store contracts.ProductStore, clk clock.Clock) *Interactor {
	return &Interactor{Store: store, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, productID string) error {
	if productID == "" {
		return domain.Invalid("product id is required")
	}
	return it.Store.Delete(ctx, productID, domain.NewProductDeletedEvent(productID, it.Clock.Now()))
}
