package domain

import (
	"fmt"
	"time"
)

// Receipt is the immutable record of a successful purchase.
type Receipt struct {
	ProductID    string
	ProductName  string
	ProductsSold int64
	TotalPrice   int64
	Timestamp    time.Time
}

// BackorderNotice is the message emitted when a purchase cannot be served.
type BackorderNotice struct {
	Message     string
	ProductID   string
	ProductName string
	Quantity    int64
}

// NewBackorderNotice builds a notice for product. All values come from the
// product and the requested quantity, never from purchase-branch state.
func NewBackorderNotice(p *Product, quantity int64) *BackorderNotice {
	return &BackorderNotice{
		Message:     fmt.Sprintf("There are not enough units of %s in stock", p.ProductName()),
		ProductID:   p.ID(),
		ProductName: p.ProductName(),
		Quantity:    quantity,
	}
}
