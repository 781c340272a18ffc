package delete_product

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

func TestDeleteProduct(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := repo.NewMemoryStore()
	p, err := domain.NewProduct("p-1", "Widget", "", "tools", 1, 1, now)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), p))

	it := NewInteractor(store, clock.NewFake(now))
	require.NoError(t, it.Execute(context.Background(), "p-1"))

	_, err = store.Get(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "product.deleted", events[1].EventType())
}

func TestDeleteProduct_MissingIsNotFound(t *testing.T) {
	store := repo.NewMemoryStore()
	it := NewInteractor(store, clock.RealClock{})

	err := it.Execute(context.Background(), "nope")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.Empty(t, store.Events())

	assert.Equal(t, domain.KindValidation, domain.KindOf(it.Execute(context.Background(), "")))
}
