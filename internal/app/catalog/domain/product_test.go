package domain

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidget(t *testing.T, stock int64) *Product {
	t.Helper()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p, err := NewProduct("p-1", " Widget ", "a widget", "tools", 10, stock, now)
	require.NoError(t, err)
	p.ClearEvents()
	return p
}

func TestNewProduct_SetsTimestampsAndEvent(t *testing.T) {
	now := time.Now().UTC()
	p, err := NewProduct("p-1", "Widget", "desc", "tools", 10, 5, now)
	require.NoError(t, err)

	assert.Equal(t, "Widget", p.ProductName())
	assert.Equal(t, now, p.CreatedAt())
	assert.Equal(t, now, p.UpdatedAt())
	require.Len(t, p.DomainEvents(), 1)
	assert.Equal(t, "product.created", p.DomainEvents()[0].EventType())
}

func TestNewProduct_Validation(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		name     string
		pname    string
		category string
		price    int64
		stock    int64
		want     error
	}{
		{"empty name", "  ", "tools", 1, 1, ErrEmptyProductName},
		{"long name", strings.Repeat("x", 256), "tools", 1, 1, ErrProductNameTooLong},
		{"empty category", "Widget", "", 1, 1, ErrEmptyProductCategory},
		{"negative price", "Widget", "tools", -1, 1, ErrNegativePrice},
		{"negative stock", "Widget", "tools", 1, -1, ErrNegativeStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewProduct("p", tc.pname, "", tc.category, tc.price, tc.stock, now)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestPurchase_DecrementsStockOnly(t *testing.T) {
	p := newWidget(t, 5)
	later := p.UpdatedAt().Add(time.Minute)

	receipt, err := p.Purchase(3, later)
	require.NoError(t, err)

	assert.Equal(t, int64(2), p.Stock())
	assert.Equal(t, int64(10), p.Price())
	assert.Equal(t, "Widget", p.ProductName())
	assert.Equal(t, later, p.UpdatedAt())
	assert.Equal(t, []string{FieldStock}, p.Changes().DirtyFields())

	assert.Equal(t, int64(3), receipt.ProductsSold)
	assert.Equal(t, int64(30), receipt.TotalPrice)
	assert.Equal(t, later, receipt.Timestamp)

	require.Len(t, p.DomainEvents(), 1)
	ev, ok := p.DomainEvents()[0].(*ProductPurchasedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(2), ev.StockAfter)
}

func TestPurchase_ExactStockIsInsufficient(t *testing.T) {
	p := newWidget(t, 5)
	before := p.UpdatedAt()

	_, err := p.Purchase(5, before.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, int64(5), p.Stock())
	assert.Equal(t, before, p.UpdatedAt())
	assert.False(t, p.Changes().HasChanges())
	assert.Empty(t, p.DomainEvents())
}

func TestPurchase_RejectsTotalPriceOverflow(t *testing.T) {
	now := time.Now().UTC()
	p, err := NewProduct("p-2", "Ingot", "", "metals", math.MaxInt64/2, 10, now)
	require.NoError(t, err)
	p.ClearEvents()

	_, err = p.Purchase(3, now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrTotalPriceOverflow)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, int64(10), p.Stock())
	assert.False(t, p.Changes().HasChanges())
	assert.Empty(t, p.DomainEvents())

	receipt, err := p.Purchase(2, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64/2)*2, receipt.TotalPrice)
}

func TestPurchase_RejectsNonPositiveQuantity(t *testing.T) {
	p := newWidget(t, 5)
	_, err := p.Purchase(0, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = p.Purchase(-2, time.Now())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestApplyPatch_OnlyChangedFieldsAreDirty(t *testing.T) {
	p := newWidget(t, 5)
	name := "Widget"
	price := int64(12)
	later := p.UpdatedAt().Add(time.Hour)

	require.NoError(t, p.ApplyPatch(Patch{ProductName: &name, Price: &price}, later))

	assert.True(t, p.Changes().Dirty(FieldPrice))
	assert.False(t, p.Changes().Dirty(FieldProductName))
	assert.Equal(t, later, p.UpdatedAt())
	require.Len(t, p.DomainEvents(), 1)
	ev := p.DomainEvents()[0].(*ProductUpdatedEvent)
	assert.Equal(t, map[string]interface{}{FieldPrice: int64(12)}, ev.Changes)
}

func TestApplyPatch_InvalidFieldLeavesProductUntouched(t *testing.T) {
	p := newWidget(t, 5)
	name := "Renamed"
	stock := int64(-1)

	err := p.ApplyPatch(Patch{ProductName: &name, Stock: &stock}, time.Now())
	assert.ErrorIs(t, err, ErrNegativeStock)
	assert.Equal(t, "Widget", p.ProductName())
	assert.False(t, p.Changes().HasChanges())
}

func TestApplyPatch_Empty(t *testing.T) {
	p := newWidget(t, 5)
	assert.ErrorIs(t, p.ApplyPatch(Patch{}, time.Now()), ErrEmptyUpdate)
}

func TestRestock_SetsFixedQuantity(t *testing.T) {
	p := newWidget(t, 2)
	later := p.UpdatedAt().Add(time.Minute)

	require.NoError(t, p.Restock(DefaultRestockQuantity, later))
	assert.Equal(t, int64(30), p.Stock())
	assert.Equal(t, later, p.UpdatedAt())

	ev := p.DomainEvents()[0].(*ProductRestockedEvent)
	assert.Equal(t, int64(2), ev.StockBefore)
	assert.Equal(t, int64(30), ev.StockAfter)
}

func TestNewBackorderNotice(t *testing.T) {
	p := newWidget(t, 1)
	n := NewBackorderNotice(p, 4)
	assert.Equal(t, "p-1", n.ProductID)
	assert.Equal(t, "Widget", n.ProductName)
	assert.Equal(t, int64(4), n.Quantity)
	assert.Contains(t, n.Message, "Widget")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("get: %w", ErrProductNotFound)))
	assert.Equal(t, KindConflict, KindOf(ErrConcurrentModification))
	assert.Equal(t, KindValidation, KindOf(Invalid("user_quantity is required")))
	assert.Equal(t, KindDownstream, KindOf(fmt.Errorf("boom")))

	wrapped := E(KindNotFound, "store.Get", fmt.Errorf("row missing"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "store.Get: row missing", wrapped.Error())
	assert.Nil(t, E(KindConflict, "op", nil))
}
