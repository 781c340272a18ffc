package create_product

import (
	"context"

	"github.com/google/uuid"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

// Request is the application-level create-product request.
type Request struct {
	ProductName string
	Description string
	Category    string
	Price       int64
	Stock       int64
}

// Interactor implements the create-product usecase.
type Interactor struct {
	Store contracts.ProductStore
	Clock clock.Clock
	NewID func() string
}

// NewInteractor constructs the interactor.
func NewInteractor(store contracts.ProductStore, clk clock.Clock) *Interactor {
	return &Interactor{
		Store: store,
		Clock: clk,
		NewID: uuid.NewString,
	}
}

// Execute creates a new product and persists it together with its created event.
func (it *Interactor) Execute(ctx context.Context, req Request) (*dto.ProductDTO, error) {
	now := it.Clock.Now()

	product, err := domain.NewProduct(it.NewID(), req.ProductName, req.Description, req.Category,
		req.Price, req.Stock, now)
	if err != nil {
		return nil, err
	}

	if err := it.Store.Insert(ctx, product); err != nil {
		return nil, err
	}

	return dto.FromProduct(product), nil
}
