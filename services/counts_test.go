package services

import (
	"context"
	"testing"

	"tradehub/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCountsMasters(t *testing.T) {
	repos := newRepos(t)
	ctx := context.Background()

	parent := &models.Category{Name: "Metals", IsActive: true}
	require.NoError(t, repos.Categories.Create(ctx, parent))
	require.NoError(t, repos.Categories.Create(ctx, &models.Category{Name: "Cement", IsActive: true}))
	for _, name := range []string{"Steel", "Copper", "Zinc"} {
		require.NoError(t, repos.Categories.Create(ctx, &models.Category{Name: name, ParentID: &parent.ID, IsActive: true}))
	}
	require.NoError(t, repos.Brands.Create(ctx, &models.Brand{Name: "Tata", IsActive: true}))
	require.NoError(t, repos.Products.Create(ctx, &models.Product{
		Name: "TMT bar", SellerID: 1, Price: decimal.NewFromInt(55000), MOQ: decimal.NewFromInt(5), IsActive: true,
	}))

	got, err := NewCountsService(repos.Categories, repos.Brands, repos.Products).Masters(ctx)
	require.NoError(t, err)
	require.Equal(t, MasterCounts{Categories: 2, Subcategories: 3, Brands: 1, Products: 1}, *got)
}
