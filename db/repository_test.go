package db_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"tradehub/db"
	"tradehub/db/dbtest"
	"tradehub/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedBrands(t *testing.T, repo *db.Repository[models.Brand], n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		b := &models.Brand{
			Name:        fmt.Sprintf("Brand %02d", i),
			Description: "industrial supplies",
			IsActive:    i%2 == 0,
		}
		if i%5 == 0 {
			b.Description = "Steel and Cement"
		}
		require.NoError(t, repo.Create(context.Background(), b))
	}
}

func TestFindManyPagesCoverEveryRowOnce(t *testing.T) {
	repos := dbtest.Repositories(t)
	seedBrands(t, repos.Brands, 23)
	ctx := context.Background()

	for _, limit := range []int{1, 4, 7, 10, 23, 50} {
		first, err := repos.Brands.FindMany(ctx, db.ListOptions{Page: 1, Limit: limit, SortBy: "name"})
		require.NoError(t, err)
		require.EqualValues(t, 23, first.Total)
		require.Equal(t, (23+limit-1)/limit, first.TotalPages, "limit %d", limit)

		seen := map[uint]bool{}
		for page := 1; page <= first.TotalPages; page++ {
			res, err := repos.Brands.FindMany(ctx, db.ListOptions{Page: page, Limit: limit, SortBy: "name"})
			require.NoError(t, err)
			for _, b := range res.Items {
				require.False(t, seen[b.ID], "brand %d returned twice", b.ID)
				seen[b.ID] = true
			}
		}
		require.Len(t, seen, 23)
	}
}

func TestFindManyFiltersAndSearch(t *testing.T) {
	repos := dbtest.Repositories(t)
	seedBrands(t, repos.Brands, 10)
	ctx := context.Background()

	active, err := repos.Brands.FindMany(ctx, db.ListOptions{
		Filter: db.Filter{Equals: map[string]any{"is_active": true}},
		Limit:  100,
	})
	require.NoError(t, err)
	require.EqualValues(t, 5, active.Total)
	for _, b := range active.Items {
		require.True(t, b.IsActive)
	}

	// search is case-insensitive and OR'd across name and description
	res, err := repos.Brands.FindMany(ctx, db.ListOptions{Filter: db.Filter{Search: "STEEL"}})
	require.NoError(t, err)
	require.EqualValues(t, 2, res.Total)

	res, err = repos.Brands.FindMany(ctx, db.ListOptions{Filter: db.Filter{Search: "brand 03"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "Brand 03", res.Items[0].Name)
}

func TestFindManyDefaultsAndSortValidation(t *testing.T) {
	repos := dbtest.Repositories(t)
	seedBrands(t, repos.Brands, 3)
	ctx := context.Background()

	res, err := repos.Brands.FindMany(ctx, db.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
	require.Equal(t, db.DefaultPageSize, res.Limit)

	res, err = repos.Brands.FindMany(ctx, db.ListOptions{Limit: 1000, SortBy: "name", SortOrder: "desc"})
	require.NoError(t, err)
	require.Equal(t, db.MaxPageSize, res.Limit)
	require.Equal(t, "Brand 03", res.Items[0].Name)

	_, err = repos.Brands.FindMany(ctx, db.ListOptions{SortBy: "password"})
	require.True(t, errors.Is(err, db.ErrInvalidQuery))

	_, err = repos.Brands.FindMany(ctx, db.ListOptions{SortOrder: "sideways"})
	require.True(t, errors.Is(err, db.ErrInvalidQuery))
}

func TestNullFiltersAndCount(t *testing.T) {
	repos := dbtest.Repositories(t)
	ctx := context.Background()

	parent := &models.Category{Name: "Metals", IsActive: true}
	require.NoError(t, repos.Categories.Create(ctx, parent))
	for _, name := range []string{"Steel", "Copper"} {
		require.NoError(t, repos.Categories.Create(ctx, &models.Category{Name: name, ParentID: &parent.ID, IsActive: true}))
	}

	top, err := repos.Categories.Count(ctx, db.Filter{IsNull: []string{"parent_id"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, top)

	sub, err := repos.Categories.Count(ctx, db.Filter{NotNull: []string{"parent_id"}})
	require.NoError(t, err)
	require.EqualValues(t, 2, sub)

	others, err := repos.Categories.Count(ctx, db.Filter{Exclude: map[string]any{"id": parent.ID}})
	require.NoError(t, err)
	require.EqualValues(t, 2, others)
}

func TestUpdateAndDeleteMissingRows(t *testing.T) {
	repos := dbtest.Repositories(t)
	ctx := context.Background()

	b := &models.Brand{Name: "Tata", IsActive: true}
	require.NoError(t, repos.Brands.Create(ctx, b))

	updated, err := repos.Brands.Update(ctx, b.ID, map[string]any{"description": "steel"})
	require.NoError(t, err)
	require.Equal(t, "steel", updated.Description)
	require.Equal(t, "Tata", updated.Name)

	_, err = repos.Brands.Update(ctx, 999, map[string]any{"description": "x"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repos.Brands.Delete(ctx, b.ID))
	require.ErrorIs(t, repos.Brands.Delete(ctx, b.ID), gorm.ErrRecordNotFound)

	_, err = repos.Brands.FindUnique(ctx, b.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, db.TotalPages(0, 10))
	require.Equal(t, 1, db.TotalPages(10, 10))
	require.Equal(t, 2, db.TotalPages(11, 10))
	require.Equal(t, 0, db.TotalPages(5, 0))
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	repos := dbtest.Repositories(t)
	ctx := context.Background()
	for _, name := range []string{"50% Off", "Half_Price", "HalfXPrice"} {
		require.NoError(t, repos.Brands.Create(ctx, &models.Brand{Name: name, IsActive: true}))
	}

	res, err := repos.Brands.FindMany(ctx, db.ListOptions{Filter: db.Filter{Search: "%"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "50% Off", res.Items[0].Name)

	res, err = repos.Brands.FindMany(ctx, db.ListOptions{Filter: db.Filter{Search: "half_price"}})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Equal(t, "Half_Price", res.Items[0].Name)

	res, err = repos.Brands.FindMany(ctx, db.ListOptions{Filter: db.Filter{Search: `\`}})
	require.NoError(t, err)
	require.EqualValues(t, 0, res.Total)
}

func TestUpdateWhere(t *testing.T) {
	repos := dbtest.Repositories(t)
	seedBrands(t, repos.Brands, 6)
	ctx := context.Background()

	n, err := repos.Brands.UpdateWhere(ctx,
		db.Filter{Equals: map[string]any{"is_active": false}},
		map[string]any{"description": "retired"})
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	retired, err := repos.Brands.Count(ctx, db.Filter{Equals: map[string]any{"description": "retired"}})
	require.NoError(t, err)
	require.EqualValues(t, 3, retired)
}

func TestDeleteNullsReferencingRows(t *testing.T) {
	repos := dbtest.Repositories(t)
	ctx := context.Background()

	brand := &models.Brand{Name: "Tata", IsActive: true}
	require.NoError(t, repos.Brands.Create(ctx, brand))
	category := &models.Category{Name: "Metals", IsActive: true}
	require.NoError(t, repos.Categories.Create(ctx, category))
	product := &models.Product{
		Name: "TMT bar", SellerID: 1, BrandID: &brand.ID, CategoryID: &category.ID,
		Price: decimal.NewFromInt(55000), MOQ: decimal.NewFromInt(5), IsActive: true,
	}
	require.NoError(t, repos.Products.Create(ctx, product))

	require.NoError(t, repos.Brands.Delete(ctx, brand.ID))
	require.NoError(t, repos.Categories.Delete(ctx, category.ID))

	got, err := repos.Products.FindUnique(ctx, product.ID)
	require.NoError(t, err)
	require.Nil(t, got.BrandID)
	require.Nil(t, got.CategoryID)
}

func TestEnforceForeignKeys(t *testing.T) {
	require.Equal(t, "database.db?_foreign_keys=1", db.EnforceForeignKeys("database.db"))
	require.Equal(t, "file:x?mode=memory&_foreign_keys=1", db.EnforceForeignKeys("file:x?mode=memory"))
	require.Equal(t, "app.db?_fk=0", db.EnforceForeignKeys("app.db?_fk=0"))
}
