package domain

import (
	"math"
	"strings"
	"time"
)

// Field constants for change tracking
const (
	FieldProductName = "product_name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldStock       = "stock"
)

// DefaultRestockQuantity is the stock level a restock resets a product to.
const DefaultRestockQuantity int64 = 30

// Product is the aggregate root for the catalog.
// Stock never goes below zero through a purchase.
type Product struct {
	id          string
	productName string
	description string
	category    string
	price       int64
	stock       int64
	createdAt   time.Time
	updatedAt   time.Time
	changes     *ChangeTracker
	events      []DomainEvent
}

// NewProduct creates a new Product with createdAt and updatedAt both set to now.
func NewProduct(id, name, description, category string, price, stock int64, now time.Time) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateProductCategory(category); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if err := validateStock(stock); err != nil {
		return nil, err
	}

	p := &Product{
		id:          id,
		productName: strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		price:       price,
		stock:       stock,
		createdAt:   now,
		updatedAt:   now,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}

	p.events = append(p.events, &ProductCreatedEvent{
		ProductID:   p.id,
		ProductName: p.productName,
		Category:    p.category,
		Price:       p.price,
		Stock:       p.stock,
		CreatedAt:   now,
	})

	return p, nil
}

// ReconstructProduct reconstructs a Product from persisted state.
// Used by stores when loading rows.
func ReconstructProduct(
	id, name, description, category string,
	price, stock int64,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		productName: name,
		description: description,
		category:    category,
		price:       price,
		stock:       stock,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		changes:     NewChangeTracker(),
		events:      make([]DomainEvent, 0),
	}
}

// Getters

func (p *Product) ID() string {
	return p.id
}

func (p *Product) ProductName() string {
	return p.productName
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Category() string {
	return p.category
}

func (p *Product) Price() int64 {
	return p.price
}

func (p *Product) Stock() int64 {
	return p.stock
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Product) Changes() *ChangeTracker {
	return p.changes
}

func (p *Product) DomainEvents() []DomainEvent {
	return p.events
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	ProductName *string
	Description *string
	Category    *string
	Price       *int64
	Stock       *int64
}

// IsEmpty reports whether no field is set.
func (pt Patch) IsEmpty() bool {
	return pt.ProductName == nil && pt.Description == nil && pt.Category == nil &&
		pt.Price == nil && pt.Stock == nil
}

// ApplyPatch updates the fields present in patch. Fields whose value does not
// change are not marked dirty; updatedAt moves only when something changed.
func (p *Product) ApplyPatch(patch Patch, now time.Time) error {
	if patch.IsEmpty() {
		return ErrEmptyUpdate
	}

	// Validate everything first so a bad field leaves the aggregate untouched.
	if patch.ProductName != nil {
		if err := validateProductName(*patch.ProductName); err != nil {
			return err
		}
	}
	if patch.Category != nil {
		if err := validateProductCategory(*patch.Category); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Stock != nil {
		if err := validateStock(*patch.Stock); err != nil {
			return err
		}
	}

	changes := make(map[string]interface{})

	if patch.ProductName != nil {
		if v := strings.TrimSpace(*patch.ProductName); v != p.productName {
			p.productName = v
			p.changes.MarkDirty(FieldProductName)
			changes[FieldProductName] = v
		}
	}
	if patch.Description != nil {
		if v := strings.TrimSpace(*patch.Description); v != p.description {
			p.description = v
			p.changes.MarkDirty(FieldDescription)
			changes[FieldDescription] = v
		}
	}
	if patch.Category != nil {
		if v := strings.TrimSpace(*patch.Category); v != p.category {
			p.category = v
			p.changes.MarkDirty(FieldCategory)
			changes[FieldCategory] = v
		}
	}
	if patch.Price != nil && *patch.Price != p.price {
		p.price = *patch.Price
		p.changes.MarkDirty(FieldPrice)
		changes[FieldPrice] = p.price
	}
	if patch.Stock != nil && *patch.Stock != p.stock {
		p.stock = *patch.Stock
		p.changes.MarkDirty(FieldStock)
		changes[FieldStock] = p.stock
	}

	if len(changes) > 0 {
		p.updatedAt = now
		p.events = append(p.events, &ProductUpdatedEvent{
			ProductID: p.id,
			UpdatedAt: now,
			Changes:   changes,
		})
	}

	return nil
}

// CanSell reports whether quantity can be served. Selling the last unit is
// refused: stock must stay strictly above the requested quantity.
func (p *Product) CanSell(quantity int64) bool {
	return p.stock > quantity
}

// Purchase decrements stock by quantity and returns the receipt.
// It returns ErrInsufficientStock without touching the aggregate when
// CanSell is false, and ErrTotalPriceOverflow when quantity*price does not
// fit in an int64.
func (p *Product) Purchase(quantity int64, now time.Time) (*Receipt, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !p.CanSell(quantity) {
		return nil, ErrInsufficientStock
	}
	if p.price != 0 && quantity > math.MaxInt64/p.price {
		return nil, ErrTotalPriceOverflow
	}

	p.stock -= quantity
	p.updatedAt = now
	p.changes.MarkDirty(FieldStock)

	receipt := &Receipt{
		ProductID:    p.id,
		ProductName:  p.productName,
		ProductsSold: quantity,
		TotalPrice:   quantity * p.price,
		Timestamp:    now,
	}

	p.events = append(p.events, &ProductPurchasedEvent{
		ProductID:   p.id,
		ProductName: p.productName,
		Quantity:    quantity,
		TotalPrice:  receipt.TotalPrice,
		StockAfter:  p.stock,
		PurchasedAt: now,
	})

	return receipt, nil
}

// Restock sets stock to quantity regardless of the current level.
func (p *Product) Restock(quantity int64, now time.Time) error {
	if err := validateStock(quantity); err != nil {
		return err
	}

	before := p.stock
	p.stock = quantity
	p.updatedAt = now
	p.changes.MarkDirty(FieldStock)

	p.events = append(p.events, &ProductRestockedEvent{
		ProductID:   p.id,
		StockBefore: before,
		StockAfter:  quantity,
		RestockedAt: now,
	})

	return nil
}

// ClearEvents clears the accumulated domain events.
// Should be called after events have been persisted.
func (p *Product) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}

// Validation helpers

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProductName
	}
	if len(trimmed) > 255 {
		return ErrProductNameTooLong
	}
	return nil
}

func validateProductCategory(category string) error {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return ErrEmptyProductCategory
	}
	if len(trimmed) > 100 {
		return ErrProductCategoryTooLong
	}
	return nil
}

func validatePrice(price int64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}

func validateStock(stock int64) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
