package repo

import (
	"cloud.google.com/go/spanner"

	domain "github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/models/m_product"
)

// ProductRepo builds Spanner mutations for products but never applies them.
type ProductRepo struct{}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{}
}

// buildInsertValues constructs the values map used for insertion.
// It's unexported so tests in the same package can inspect the map without
// relying on spanner.Mutation internals.
func buildInsertValues(p *domain.Product) map[string]interface{} {
	return m_product.BuildInsertMap(p.ID(), p.ProductName(), p.Description(), p.Category(),
		p.Price(), p.Stock(), p.CreatedAt().UTC(), p.UpdatedAt().UTC())
}

// buildUpdateValues maps the aggregate's dirty fields to columns and stamps
// updated_at. It returns nil when nothing is dirty.
func buildUpdateValues(p *domain.Product) map[string]interface{} {
	if p == nil || p.Changes() == nil || !p.Changes().HasChanges() {
		return nil
	}

	updates := map[string]interface{}{}

	if p.Changes().Dirty(domain.FieldProductName) {
		updates[m_product.ColProductName] = p.ProductName()
	}
	if p.Changes().Dirty(domain.FieldDescription) {
		updates[m_product.ColDescription] = p.Description()
	}
	if p.Changes().Dirty(domain.FieldCategory) {
		updates[m_product.ColCategory] = p.Category()
	}
	if p.Changes().Dirty(domain.FieldPrice) {
		updates[m_product.ColPrice] = p.Price()
	}
	if p.Changes().Dirty(domain.FieldStock) {
		updates[m_product.ColStock] = p.Stock()
	}

	if len(updates) == 0 {
		return nil
	}

	updates[m_product.ColUpdatedAt] = p.UpdatedAt().UTC()
	return updates
}

// InsertMut builds an Insert mutation for a new product.
func (r *ProductRepo) InsertMut(p *domain.Product) *spanner.Mutation {
	return m_product.InsertMutation(buildInsertValues(p))
}

// UpdateMut builds an Update mutation of the dirty fields, or nil when there are none.
func (r *ProductRepo) UpdateMut(p *domain.Product) *spanner.Mutation {
	updates := buildUpdateValues(p)
	if updates == nil {
		return nil
	}
	return m_product.UpdateMutation(p.ID(), updates)
}

// ConditionalUpdateStmt builds a DML update of the dirty fields that only
// applies while the stored stock equals expectedStock. ok is false when
// nothing is dirty.
func (r *ProductRepo) ConditionalUpdateStmt(p *domain.Product, expectedStock int64) (stmt spanner.Statement, ok bool) {
	updates := buildUpdateValues(p)
	if updates == nil {
		return spanner.Statement{}, false
	}
	return m_product.ConditionalUpdateStatement(p.ID(), expectedStock, updates), true
}

// DeleteStmt builds the DML delete for id.
func (r *ProductRepo) DeleteStmt(id string) spanner.Statement {
	return m_product.DeleteStatement(id)
}
