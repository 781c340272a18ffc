// Package catalog groups the catalog's application handlers for the transports.
package catalog

import (
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/get_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/queries/list_products"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/create_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/delete_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/purchase_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/restock_product"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/usecases/update_product"
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Create   *create_product.Interactor
	Update   *update_product.Interactor
	Delete   *delete_product.Interactor
	Purchase *purchase_product.Interactor
	Restock  *restock_product.Interactor
}

// Queries groups read handlers.
type Queries struct {
	Get  *get_product.Handler
	List *list_products.Handler
}
