package db

import (
	"tradehub/models"

	"gorm.io/gorm"
)

var (
	BrandSpec = Spec{
		SearchColumns: []string{"name", "description"},
		SortFields: map[string]string{
			"id": "id", "name": "name", "createdAt": "created_at", "updatedAt": "updated_at",
		},
		DefaultSort:  "createdAt",
		DefaultOrder: "desc",
	}
	CategorySpec = Spec{
		SearchColumns: []string{"name", "description"},
		SortFields: map[string]string{
			"id": "id", "name": "name", "sortOrder": "sort_order",
			"createdAt": "created_at", "updatedAt": "updated_at",
		},
		DefaultSort:  "sortOrder",
		DefaultOrder: "asc",
	}
	UnitSpec = Spec{
		SearchColumns: []string{"name", "symbol", "description"},
		SortFields: map[string]string{
			"id": "id", "name": "name", "symbol": "symbol", "createdAt": "created_at",
		},
		DefaultSort:  "name",
		DefaultOrder: "asc",
	}
	ProductSpec = Spec{
		SearchColumns: []string{"name", "description"},
		SortFields: map[string]string{
			"id": "id", "name": "name", "price": "price", "createdAt": "created_at",
		},
		DefaultSort:  "createdAt",
		DefaultOrder: "desc",
	}
	RequirementSpec = Spec{
		SearchColumns: []string{"title", "description"},
		SortFields: map[string]string{
			"id": "id", "title": "title", "quantity": "quantity", "status": "status",
			"createdAt": "created_at", "updatedAt": "updated_at",
		},
		DefaultSort:  "createdAt",
		DefaultOrder: "desc",
	}
	OfferSpec = Spec{
		SortFields:   map[string]string{"id": "id", "createdAt": "created_at"},
		DefaultSort:  "createdAt",
		DefaultOrder: "desc",
	}
	BidSpec = Spec{
		SortFields:   map[string]string{"id": "id", "createdAt": "created_at"},
		DefaultSort:  "createdAt",
		DefaultOrder: "desc",
	}
	LogisticsSpec = Spec{
		SearchColumns: []string{"truck_number", "transport_company", "tracking_id", "driver_name"},
		SortFields: map[string]string{
			"id": "id", "status": "status", "createdAt": "created_at", "updatedAt": "updated_at",
		},
		DefaultSort:  "createdAt",
		DefaultOrder: "asc",
	}
)

var _ Store[models.Logistics] = (*Repository[models.Logistics])(nil)

// Repositories bundles one repository per entity over a single handle.
type Repositories struct {
	Brands       *Repository[models.Brand]
	Categories   *Repository[models.Category]
	Units        *Repository[models.Unit]
	Products     *Repository[models.Product]
	Requirements *Repository[models.Requirement]
	Offers       *Repository[models.Offer]
	Bids         *Repository[models.Bid]
	Logistics    *Repository[models.Logistics]
}

func NewRepositories(gdb *gorm.DB) *Repositories {
	return &Repositories{
		Brands:       NewRepository[models.Brand](gdb, BrandSpec),
		Categories:   NewRepository[models.Category](gdb, CategorySpec),
		Units:        NewRepository[models.Unit](gdb, UnitSpec),
		Products:     NewRepository[models.Product](gdb, ProductSpec),
		Requirements: NewRepository[models.Requirement](gdb, RequirementSpec),
		Offers:       NewRepository[models.Offer](gdb, OfferSpec),
		Bids:         NewRepository[models.Bid](gdb, BidSpec),
		Logistics:    NewRepository[models.Logistics](gdb, LogisticsSpec),
	}
}
