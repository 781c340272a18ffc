package domain

import "time"

// DomainEvent is a marker interface for all domain events.
// Domain events represent facts about things that have happened in the domain.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductCreatedEvent is raised when a new product is created.
type ProductCreatedEvent struct {
	ProductID   string
	ProductName string
	Category    string
	Price       int64
	Stock       int64
	CreatedAt   time.Time
}

func (e *ProductCreatedEvent) EventType() string {
	return "product.created"
}

func (e *ProductCreatedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// ProductUpdatedEvent is raised when product fields are changed through an update.
type ProductUpdatedEvent struct {
	ProductID string
	UpdatedAt time.Time
	Changes   map[string]interface{} // Map of field name to new value
}

func (e *ProductUpdatedEvent) EventType() string {
	return "product.updated"
}

func (e *ProductUpdatedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// ProductPurchasedEvent is raised when stock is decremented by a purchase.
type ProductPurchasedEvent struct {
	ProductID   string
	ProductName string
	Quantity    int64
	TotalPrice  int64
	StockAfter  int64
	PurchasedAt time.Time
}

func (e *ProductPurchasedEvent) EventType() string {
	return "product.purchased"
}

func (e *ProductPurchasedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductPurchasedEvent) OccurredAt() time.Time {
	return e.PurchasedAt
}

// ProductRestockedEvent is raised when stock is reset to the restock quantity.
type ProductRestockedEvent struct {
	ProductID   string
	StockBefore int64
	StockAfter  int64
	RestockedAt time.Time
}

func (e *ProductRestockedEvent) EventType() string {
	return "product.restocked"
}

func (e *ProductRestockedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductRestockedEvent) OccurredAt() time.Time {
	return e.RestockedAt
}

// ProductDeletedEvent is raised when a product row is removed.
type ProductDeletedEvent struct {
	ProductID string
	DeletedAt time.Time
}

// NewProductDeletedEvent builds the event for a delete issued by identifier only.
func NewProductDeletedEvent(productID string, now time.Time) *ProductDeletedEvent {
	return &ProductDeletedEvent{ProductID: productID, DeletedAt: now}
}

func (e *ProductDeletedEvent) EventType() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) AggregateID() string {
	return e.ProductID
}

func (e *ProductDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
