package services

import (
	"context"
	"strings"
	"time"

	"tradehub/db"
	"tradehub/models"
)

type BrandService struct {
	brands db.Store[models.Brand]
}

func NewBrandService(brands db.Store[models.Brand]) *BrandService {
	return &BrandService{brands: brands}
}

type CreateBrandInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
	Logo        string `json:"logo" validate:"max=500"`
	IsActive    *bool  `json:"isActive"`
	CreatedByID *uint  `json:"-"`
}

type UpdateBrandInput struct {
	Name        models.Optional[string] `json:"name"`
	Description models.Optional[string] `json:"description"`
	Logo        models.Optional[string] `json:"logo"`
	IsActive    models.Optional[bool]   `json:"isActive"`
}

type BrandResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBrandResponse(b *models.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Logo:        b.Logo,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (s *BrandService) Create(ctx context.Context, in CreateBrandInput) (*BrandResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	brand := &models.Brand{
		Name:        in.Name,
		Description: in.Description,
		Logo:        in.Logo,
		IsActive:    true,
		CreatedByID: in.CreatedByID,
	}
	if in.IsActive != nil {
		brand.IsActive = *in.IsActive
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, storeError(err, "brand")
	}
	resp := toBrandResponse(brand)
	return &resp, nil
}

func (s *BrandService) List(ctx context.Context, p ListParams) (*ListResult[BrandResponse], error) {
	page, err := s.brands.FindMany(ctx, p.options(db.Filter{}))
	if err != nil {
		return nil, storeError(err, "brand")
	}
	return mapPage(page, toBrandResponse), nil
}

func (s *BrandService) Get(ctx context.Context, id uint) (*BrandResponse, error) {
	brand, err := s.brands.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "brand")
	}
	resp := toBrandResponse(brand)
	return &resp, nil
}

func (s *BrandService) Update(ctx context.Context, id uint, in UpdateBrandInput) (*BrandResponse, error) {
	current, err := s.brands.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "brand")
	}

	changes := map[string]any{}
	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if err := validateField("name", name, "required,max=100"); err != nil {
			return nil, err
		}
		if name != current.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		changes["name"] = name
	}
	if in.Description.Set {
		if err := validateField("description", in.Description.Value, "max=2000"); err != nil {
			return nil, err
		}
		changes["description"] = in.Description.Value
	}
	if in.Logo.Set {
		if err := validateField("logo", in.Logo.Value, "max=500"); err != nil {
			return nil, err
		}
		changes["logo"] = in.Logo.Value
	}
	if in.IsActive.Set {
		if in.IsActive.Null {
			return nil, Validation("isActive cannot be null")
		}
		changes["is_active"] = in.IsActive.Value
	}

	updated, err := s.brands.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "brand")
	}
	resp := toBrandResponse(updated)
	return &resp, nil
}

func (s *BrandService) Delete(ctx context.Context, id uint) error {
	if _, err := s.brands.FindUnique(ctx, id); err != nil {
		return storeError(err, "brand")
	}
	return storeError(s.brands.Delete(ctx, id), "brand")
}

// ensureNameFree fails with a conflict when another brand already uses name.
// selfID is excluded so a rename to the current name is not a collision.
func (s *BrandService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	f := db.Filter{Equals: map[string]any{"name": name}}
	if selfID != 0 {
		f.Exclude = map[string]any{"id": selfID}
	}
	n, err := s.brands.Count(ctx, f)
	if err != nil {
		return storeError(err, "brand")
	}
	if n > 0 {
		return Conflict("brand with name %q already exists", name)
	}
	return nil
}
