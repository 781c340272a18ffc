package m_product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConditionalUpdateStatement(t *testing.T) {
	stmt := ConditionalUpdateStatement("p-1", 5, map[string]interface{}{
		ColStock:     int64(2),
		ColProductID: "ignored",
		ColUpdatedAt: "ts",
	})

	assert.Equal(t,
		"UPDATE products SET stock = @stock, updated_at = @updated_at WHERE product_id = @id AND stock = @expected_stock",
		stmt.SQL)
	assert.Equal(t, "p-1", stmt.Params["id"])
	assert.Equal(t, int64(5), stmt.Params["expected_stock"])
	assert.Equal(t, int64(2), stmt.Params[ColStock])
	assert.NotContains(t, stmt.Params, ColProductID)
}

func TestDeleteStatement(t *testing.T) {
	stmt := DeleteStatement("p-9")
	assert.Equal(t, "DELETE FROM products WHERE product_id = @id", stmt.SQL)
	assert.Equal(t, "p-9", stmt.Params["id"])
}

func TestBuildInsertMap_HasEveryColumn(t *testing.T) {
	m := BuildInsertMap("p", "n", "d", "c", 1, 2, zeroTime, zeroTime)
	for _, col := range AllColumns {
		assert.Contains(t, m, col)
	}
}

var zeroTime time.Time
