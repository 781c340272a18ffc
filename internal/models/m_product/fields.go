package m_product

// Field constants for the products table.
const (
	TableName = "products"

	ColProductID   = "product_id"
	ColProductName = "product_name"
	ColDescription = "description"
	ColCategory    = "category"
	ColPrice       = "price"
	ColStock       = "stock"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)

// AllColumns lists the columns in the order read queries select them.
var AllColumns = []string{
	ColProductID,
	ColProductName,
	ColDescription,
	ColCategory,
	ColPrice,
	ColStock,
	ColCreatedAt,
	ColUpdatedAt,
}
