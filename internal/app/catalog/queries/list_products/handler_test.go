package list_products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/domain"
	"github.com/murkotick/catalog-purchase-service/internal/app/catalog/repo"
)

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	store := repo.NewMemoryStore()
	h := NewHandler(store)

	out, err := h.Execute(ctx, Query{})
	require.NoError(t, err)
	assert.Empty(t, out)

	now := time.Now().UTC()
	for _, seed := range []struct{ id, category string }{{"a", "tools"}, {"b", "toys"}, {"c", "tools"}} {
		p, err := domain.NewProduct(seed.id, "P "+seed.id, "", seed.category, 1, 1, now)
		require.NoError(t, err)
		require.NoError(t, store.Insert(ctx, p))
	}

	out, err = h.Execute(ctx, Query{})
	require.NoError(t, err)
	assert.Len(t, out, 3)

	tools := "tools"
	out, err = h.Execute(ctx, Query{Category: &tools, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ProductID)

	_, err = h.Execute(ctx, Query{Limit: -1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = h.Execute(ctx, Query{Offset: -1})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}
