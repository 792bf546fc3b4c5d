package services

import (
	"context"
	"strings"
	"time"

	"tradehub/db"
	"tradehub/models"
)

type UnitService struct {
	units db.Store[models.Unit]
}

func NewUnitService(units db.Store[models.Unit]) *UnitService {
	return &UnitService{units: units}
}

type CreateUnitInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Symbol      string `json:"symbol" validate:"max=20"`
	Description string `json:"description" validate:"max=2000"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateUnitInput struct {
	Name        models.Optional[string] `json:"name"`
	Symbol      models.Optional[string] `json:"symbol"`
	Description models.Optional[string] `json:"description"`
	IsActive    models.Optional[bool]   `json:"isActive"`
}

type UnitResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUnitResponse(u *models.Unit) UnitResponse {
	return UnitResponse{
		ID:          u.ID,
		Name:        u.Name,
		Symbol:      u.Symbol,
		Description: u.Description,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (s *UnitService) Create(ctx context.Context, in CreateUnitInput) (*UnitResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Symbol = strings.TrimSpace(in.Symbol)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}

	unit := &models.Unit{
		Name:        in.Name,
		Symbol:      in.Symbol,
		Description: in.Description,
		IsActive:    true,
	}
	if in.IsActive != nil {
		unit.IsActive = *in.IsActive
	}
	if err := s.units.Create(ctx, unit); err != nil {
		return nil, storeError(err, "unit")
	}
	resp := toUnitResponse(unit)
	return &resp, nil
}

func (s *UnitService) List(ctx context.Context, p ListParams) (*ListResult[UnitResponse], error) {
	page, err := s.units.FindMany(ctx, p.options(db.Filter{}))
	if err != nil {
		return nil, storeError(err, "unit")
	}
	return mapPage(page, toUnitResponse), nil
}

func (s *UnitService) Get(ctx context.Context, id uint) (*UnitResponse, error) {
	unit, err := s.units.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "unit")
	}
	resp := toUnitResponse(unit)
	return &resp, nil
}

func (s *UnitService) Update(ctx context.Context, id uint, in UpdateUnitInput) (*UnitResponse, error) {
	current, err := s.units.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "unit")
	}

	changes := map[string]any{}
	if in.Name.Set {
		name := strings.TrimSpace(in.Name.Value)
		if err := validateField("name", name, "required,max=50"); err != nil {
			return nil, err
		}
		if name != current.Name {
			if err := s.ensureNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		changes["name"] = name
	}
	if in.Symbol.Set {
		symbol := strings.TrimSpace(in.Symbol.Value)
		if err := validateField("symbol", symbol, "max=20"); err != nil {
			return nil, err
		}
		changes["symbol"] = symbol
	}
	if in.Description.Set {
		if err := validateField("description", in.Description.Value, "max=2000"); err != nil {
			return nil, err
		}
		changes["description"] = in.Description.Value
	}
	if in.IsActive.Set {
		if in.IsActive.Null {
			return nil, Validation("isActive cannot be null")
		}
		changes["is_active"] = in.IsActive.Value
	}

	updated, err := s.units.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "unit")
	}
	resp := toUnitResponse(updated)
	return &resp, nil
}

func (s *UnitService) Delete(ctx context.Context, id uint) error {
	if _, err := s.units.FindUnique(ctx, id); err != nil {
		return storeError(err, "unit")
	}
	return storeError(s.units.Delete(ctx, id), "unit")
}

func (s *UnitService) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	f := db.Filter{Equals: map[string]any{"name": name}}
	if selfID != 0 {
		f.Exclude = map[string]any{"id": selfID}
	}
	n, err := s.units.Count(ctx, f)
	if err != nil {
		return storeError(err, "unit")
	}
	if n > 0 {
		return Conflict("unit with name %q already exists", name)
	}
	return nil
}
