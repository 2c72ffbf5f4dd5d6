package seed

import (
	"context"
	"testing"

	"agrimart/internal/domain"
	"agrimart/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	n, err := Apply(ctx, store.Products())
	require.NoError(t, err)
	assert.Equal(t, len(demoCatalog), n)

	_, err = Apply(ctx, store.Products())
	require.NoError(t, err)

	products, err := store.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, len(demoCatalog))
	for _, p := range products {
		assert.True(t, p.Category.Valid(), p.Name)
		assert.True(t, p.Price.IsPositive(), p.Name)
	}
	assert.Equal(t, domain.CategoryCrops, products[0].Category)
}
