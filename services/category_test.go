package services

import (
	"context"
	"testing"

	"tradehub/models"

	"github.com/stretchr/testify/require"
)

func TestCategoryParentRules(t *testing.T) {
	svc := NewCategoryService(newRepos(t).Categories)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Rebars", ParentID: ptr(uint(42))})
	require.Equal(t, KindNotFound, KindOf(err))

	metals, err := svc.Create(ctx, CreateCategoryInput{Name: "Metals"})
	require.NoError(t, err)
	rebars, err := svc.Create(ctx, CreateCategoryInput{Name: "Rebars", ParentID: &metals.ID})
	require.NoError(t, err)
	require.Equal(t, metals.ID, *rebars.ParentID)

	_, err = svc.Update(ctx, metals.ID, UpdateCategoryInput{ParentID: models.Some(metals.ID)})
	require.Equal(t, KindValidation, KindOf(err))

	// null promotes the subcategory to top level
	promoted, err := svc.Update(ctx, rebars.ID, UpdateCategoryInput{ParentID: models.Null[uint]()})
	require.NoError(t, err)
	require.Nil(t, promoted.ParentID)

	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Metals"})
	require.Equal(t, KindConflict, KindOf(err))
}

func TestCategoryListFilters(t *testing.T) {
	svc := NewCategoryService(newRepos(t).Categories)
	ctx := context.Background()

	metals, err := svc.Create(ctx, CreateCategoryInput{Name: "Metals"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Cement"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Pipes", ParentID: &metals.ID})
	require.NoError(t, err)

	top, err := svc.List(ctx, CategoryListParams{TopLevel: true})
	require.NoError(t, err)
	require.EqualValues(t, 2, top.Meta.Total)

	subs, err := svc.List(ctx, CategoryListParams{ParentID: &metals.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, subs.Meta.Total)
	require.Equal(t, "Pipes", subs.Data[0].Name)
}

func TestCategoryTree(t *testing.T) {
	svc := NewCategoryService(newRepos(t).Categories)
	ctx := context.Background()

	metals, err := svc.Create(ctx, CreateCategoryInput{Name: "Metals", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Cement", SortOrder: 1})
	require.NoError(t, err)
	hidden, err := svc.Create(ctx, CreateCategoryInput{Name: "Hidden", IsActive: ptr(false)})
	require.NoError(t, err)
	for _, name := range []string{"Steel", "Copper"} {
		_, err = svc.Create(ctx, CreateCategoryInput{Name: name, ParentID: &metals.ID})
		require.NoError(t, err)
	}
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Orphan", ParentID: &hidden.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Brass", ParentID: &metals.ID, IsActive: ptr(false)})
	require.NoError(t, err)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Equal(t, "Cement", tree[0].Name)
	require.Empty(t, tree[0].Subcategories)
	require.Equal(t, "Metals", tree[1].Name)
	require.Len(t, tree[1].Subcategories, 2)
	require.Equal(t, "Copper", tree[1].Subcategories[0].Name)
	require.Equal(t, "Steel", tree[1].Subcategories[1].Name)
}

func TestCategoryDeletePromotesSubcategories(t *testing.T) {
	repos := newRepos(t)
	svc := NewCategoryService(repos.Categories)
	ctx := context.Background()

	metals, err := svc.Create(ctx, CreateCategoryInput{Name: "Metals"})
	require.NoError(t, err)
	pipes, err := svc.Create(ctx, CreateCategoryInput{Name: "Pipes", ParentID: &metals.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, metals.ID))

	got, err := svc.Get(ctx, pipes.ID)
	require.NoError(t, err)
	require.Nil(t, got.ParentID)

	counts, err := NewCountsService(repos.Categories, repos.Brands, repos.Products).Masters(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, counts.Categories)
	require.EqualValues(t, 0, counts.Subcategories)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, "Pipes", tree[0].Name)
}

func TestCategoryNestingIsOneLevelDeep(t *testing.T) {
	svc := NewCategoryService(newRepos(t).Categories)
	ctx := context.Background()

	metals, err := svc.Create(ctx, CreateCategoryInput{Name: "Metals"})
	require.NoError(t, err)
	pipes, err := svc.Create(ctx, CreateCategoryInput{Name: "Pipes", ParentID: &metals.ID})
	require.NoError(t, err)
	cement, err := svc.Create(ctx, CreateCategoryInput{Name: "Cement"})
	require.NoError(t, err)

	// a subcategory cannot be a parent
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Copper pipes", ParentID: &pipes.ID})
	require.Equal(t, KindValidation, KindOf(err))
	_, err = svc.Update(ctx, cement.ID, UpdateCategoryInput{ParentID: models.Some(pipes.ID)})
	require.Equal(t, KindValidation, KindOf(err))

	// a category with subcategories cannot move under another one
	_, err = svc.Update(ctx, metals.ID, UpdateCategoryInput{ParentID: models.Some(pipes.ID)})
	require.Equal(t, KindValidation, KindOf(err))
	_, err = svc.Update(ctx, metals.ID, UpdateCategoryInput{ParentID: models.Some(cement.ID)})
	require.Equal(t, KindValidation, KindOf(err))

	// moving a leaf between top-level parents is fine
	moved, err := svc.Update(ctx, pipes.ID, UpdateCategoryInput{ParentID: models.Some(cement.ID)})
	require.NoError(t, err)
	require.Equal(t, cement.ID, *moved.ParentID)

	tree, err := svc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
}
