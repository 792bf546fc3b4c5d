package services

import (
	"context"

	"tradehub/db"
	"tradehub/models"

	"golang.org/x/sync/errgroup"
)

type MasterCounts struct {
	Categories    int64 `json:"categories"`
	Subcategories int64 `json:"subcategories"`
	Brands        int64 `json:"brands"`
	Products      int64 `json:"products"`
}

type CountsService struct {
	categories db.Store[models.Category]
	brands     db.Store[models.Brand]
	products   db.Store[models.Product]
}

func NewCountsService(categories db.Store[models.Category], brands db.Store[models.Brand], products db.Store[models.Product]) *CountsService {
	return &CountsService{categories: categories, brands: brands, products: products}
}

// Masters runs the four counts concurrently. They do not share a
// transaction, so concurrent writes may skew them relative to each other.
func (s *CountsService) Masters(ctx context.Context) (*MasterCounts, error) {
	var out MasterCounts
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Categories, err = s.categories.Count(ctx, db.Filter{IsNull: []string{"parent_id"}})
		return storeError(err, "category")
	})
	g.Go(func() (err error) {
		out.Subcategories, err = s.categories.Count(ctx, db.Filter{NotNull: []string{"parent_id"}})
		return storeError(err, "category")
	})
	g.Go(func() (err error) {
		out.Brands, err = s.brands.Count(ctx, db.Filter{})
		return storeError(err, "brand")
	})
	g.Go(func() (err error) {
		out.Products, err = s.products.Count(ctx, db.Filter{})
		return storeError(err, "product")
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
