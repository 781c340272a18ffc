package m_product

import (
	"time"

	"cloud.google.com/go/spanner"
)

// InsertMutation builds a spanner.Insert mutation for a product using a map of values.
// Expected keys are the column names declared in fields.go.
func InsertMutation(values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(values))
	vals := make([]interface{}, 0, len(values))
	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}
	return spanner.Insert(TableName, cols, vals)
}

// UpdateMutation builds a spanner.Update mutation for a product.
// The values map must not include product_id; it is passed separately and
// placed first as the primary key.
func UpdateMutation(productID string, values map[string]interface{}) *spanner.Mutation {
	cols := []string{ColProductID}
	vals := []interface{}{productID}

	for col, v := range values {
		cols = append(cols, col)
		vals = append(vals, v)
	}

	return spanner.Update(TableName, cols, vals)
}

// BuildInsertMap prepares the canonical fields for insertion.
func BuildInsertMap(productID, name, description, category string, price, stock int64,
	createdAt, updatedAt time.Time) map[string]interface{} {

	return map[string]interface{}{
		ColProductID:   productID,
		ColProductName: name,
		ColDescription: description,
		ColCategory:    category,
		ColPrice:       price,
		ColStock:       stock,
		ColCreatedAt:   createdAt,
		ColUpdatedAt:   updatedAt,
	}
}

// ConditionalUpdateStatement builds a DML update of values that only matches
// the row while its stock still equals expectedStock.
func ConditionalUpdateStatement(productID string, expectedStock int64, values map[string]interface{}) spanner.Statement {
	params := map[string]interface{}{
		"id":             productID,
		"expected_stock": expectedStock,
	}

	sql := "UPDATE " + TableName + " SET "
	first := true
	for _, col := range AllColumns {
		v, ok := values[col]
		if !ok || col == ColProductID {
			continue
		}
		if !first {
			sql += ", "
		}
		first = false
		sql += col + " = @" + col
		params[col] = v
	}
	sql += " WHERE " + ColProductID + " = @id AND " + ColStock + " = @expected_stock"

	return spanner.Statement{SQL: sql, Params: params}
}

// DeleteStatement builds a DML delete of a single product row.
func DeleteStatement(productID string) spanner.Statement {
	return spanner.Statement{
		SQL:    "DELETE FROM " + TableName + " WHERE " + ColProductID + " = @id",
		Params: map[string]interface{}{"id": productID},
	}
}
