package get_product

import (
	"context"

	contracts "github.com/murkotick/catalog-purchase-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/dto"
)

type Handler struct {
	store contracts.ProductStore
}

func NewHandler(s contracts.ProductStore) *Handler {
	return &Handler{store: s}
}

// Execute returns the product or an error of kind not-found.
func (h *Handler) Execute(ctx context.Context, productID string) (*dto.ProductDTO, error) {
	if productID == "" {
		return nil, domain.Invalid("product id is required")
	}
	p, err := h.store.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(p), nil
}
