package dto

import (
	"time"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
)

// ProductDTO is the read shape of a product shared by both transports.
// Timestamps are RFC3339 strings in UTC.
type ProductDTO struct {
	ProductID   string `json:"id"`
	ProductName string `json:"product_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ReceiptDTO is the JSON document written to the receipt sink.
type ReceiptDTO struct {
	Timestamp    string `json:"timestamp"`
	ProductName  string `json:"product_name"`
	ProductsSold int64  `json:"products_sold"`
	TotalPrice   int64  `json:"total_price"`
}

// BackorderDTO is the JSON body of a backorder queue message.
type BackorderDTO struct {
	Message     string `json:"message"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"user_quantity"`
}

func FromProduct(p *domain.Product) *ProductDTO {
	return &ProductDTO{
		ProductID:   p.ID(),
		ProductName: p.ProductName(),
		Description: p.Description(),
		Category:    p.Category(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		CreatedAt:   FormatTime(p.CreatedAt()),
		UpdatedAt:   FormatTime(p.UpdatedAt()),
	}
}

func FromReceipt(r *domain.Receipt) *ReceiptDTO {
	return &ReceiptDTO{
		Timestamp:    FormatTime(r.Timestamp),
		ProductName:  r.ProductName,
		ProductsSold: r.ProductsSold,
		TotalPrice:   r.TotalPrice,
	}
}

func FromBackorderNotice(n *domain.BackorderNotice) *BackorderDTO {
	return &BackorderDTO{
		Message:     n.Message,
		ProductID:   n.ProductID,
		ProductName: n.ProductName,
		Quantity:    n.Quantity,
	}
}

// FormatTime renders t as RFC3339 with nanoseconds in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
