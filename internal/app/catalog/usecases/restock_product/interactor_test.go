package restock_product

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/repo"
	"github.com/murkotick/catalog-purchase-service/internal/pkg/clock"
)

func TestRestockProduct(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := repo.NewMemoryStore()
	p, err := domain.NewProduct("p-1", "Widget", "", "tools", 1, 2, t0)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), p))

	clk := clock.NewFake(t0)
	later := clk.Advance(time.Minute)
	it := NewInteractor(store, clk, 0)
	assert.Equal(t, domain.DefaultRestockQuantity, it.Quantity)

	out, err := it.Execute(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), out.Stock)

	stored, err := store.Get(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), stored.Stock())
	assert.Equal(t, later, stored.UpdatedAt())

	events := store.Events()
	assert.Equal(t, "product.restocked", events[len(events)-1].EventType())
}

func TestRestockProduct_CustomQuantityAndMissing(t *testing.T) {
	store := repo.NewMemoryStore()
	it := NewInteractor(store, clock.RealClock{}, 50)
	assert.Equal(t, int64(50), it.Quantity)

	_, err := it.Execute(context.Background(), "missing")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
