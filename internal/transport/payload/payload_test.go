package payload

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
)

func TestInt(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{float64(5), 5, true},
		{"12", 12, true},
		{" 7 ", 7, true},
		{"10.0", 10, true},
		{json.Number("42"), 42, true},
		{float64(2.5), 0, false},
		{"abc", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{"9223372036854775807", math.MaxInt64, true},
		{float64(-0x1p63), math.MinInt64, true},
		{"1e19", 0, false},
		{"9223372036854775808", 0, false},
		{float64(math.MaxInt64), 0, false},
		{"-1e19", 0, false},
		{"1e300", 0, false},
		{float64(1e30), 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tc := range cases {
		got, err := Int("stock", tc.in)
		if !tc.ok {
			assert.Equal(t, domain.KindValidation, domain.KindOf(err), "%v", tc.in)
			continue
		}
		require.NoError(t, err, "%v", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestCreate_CoercesNumericStrings(t *testing.T) {
	req, err := Create(map[string]any{
		"product_name": "Widget",
		"description":  "blue",
		"category":     "tools",
		"price":        "10",
		"stock":        float64(5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), req.Price)
	assert.Equal(t, int64(5), req.Stock)
}

func TestCreate_MissingField(t *testing.T) {
	_, err := Create(map[string]any{"product_name": "Widget", "category": "tools", "price": 1, "stock": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description is required")

	_, err = Create(nil)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = Create(map[string]any{"product_name": 3, "description": "", "category": "t", "price": 1, "stock": 1})
	assert.Contains(t, err.Error(), "product_name must be a string")
}

func TestUpdate(t *testing.T) {
	req, err := Update("p-1", map[string]any{"stock": "3", "category": "toys", "ignored": 1})
	require.NoError(t, err)
	assert.Equal(t, "p-1", req.ProductID)
	require.NotNil(t, req.Stock)
	assert.Equal(t, int64(3), *req.Stock)
	assert.Equal(t, "toys", *req.Category)
	assert.Nil(t, req.Price)

	_, err = Update("p-1", map[string]any{"ignored": 1})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)

	_, err = Update("p-1", map[string]any{"price": "ten"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestPurchase(t *testing.T) {
	req, err := Purchase(map[string]any{"product_id": "p-1", "user_quantity": "3"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), req.Quantity)

	for _, body := range []map[string]any{
		{"user_quantity": 1},
		{"product_id": "", "user_quantity": 1},
		{"product_id": "p-1"},
		{"product_id": "p-1", "user_quantity": 0},
		{"product_id": "p-1", "user_quantity": "-1"},
		{"product_id": 9, "user_quantity": 1},
	} {
		_, err := Purchase(body)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "%v", body)
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Product with ID p-1 does not exist.", MsgNotFound("p-1"))
	assert.Equal(t, "An error occurred while deleting product.", MsgFailed("deleting product"))
}
