package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tradehub/db"
	"tradehub/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RequirementService struct {
	requirements db.Store[models.Requirement]
	categories   db.Store[models.Category]
	brands       db.Store[models.Brand]
	units        db.Store[models.Unit]
	now          func() time.Time
}

func NewRequirementService(
	requirements db.Store[models.Requirement],
	categories db.Store[models.Category],
	brands db.Store[models.Brand],
	units db.Store[models.Unit],
) *RequirementService {
	return &RequirementService{
		requirements: requirements,
		categories:   categories,
		brands:       brands,
		units:        units,
		now:          time.Now,
	}
}

type CreateRequirementInput struct {
	Title          string              `json:"title" validate:"required,max=200"`
	Description    string              `json:"description" validate:"max=5000"`
	BuyerID        uint                `json:"-" validate:"required"`
	CategoryID     uint                `json:"categoryId" validate:"required"`
	BrandID        *uint               `json:"brandId"`
	UnitID         *uint               `json:"unitId"`
	Quantity       decimal.Decimal     `json:"quantity"`
	TargetPrice    decimal.NullDecimal `json:"targetPrice"`
	Specifications json.RawMessage     `json:"specifications"`
}

type RequirementListParams struct {
	Search     string
	Status     string
	CategoryID *uint
	BuyerID    *uint
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

type ReviewRequirementInput struct {
	Status          string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejectionReason" validate:"max=2000"`
}

func (s *RequirementService) Create(ctx context.Context, in CreateRequirementInput) (*models.Requirement, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, Validation("quantity must be greater than 0")
	}
	if in.TargetPrice.Valid && !in.TargetPrice.Decimal.IsPositive() {
		return nil, Validation("targetPrice must be greater than 0")
	}
	if len(in.Specifications) > 0 && !json.Valid(in.Specifications) {
		return nil, Validation("specifications must be valid JSON")
	}

	if _, err := s.categories.FindUnique(ctx, in.CategoryID); err != nil {
		return nil, storeError(err, "category")
	}
	if in.BrandID != nil {
		if _, err := s.brands.FindUnique(ctx, *in.BrandID); err != nil {
			return nil, storeError(err, "brand")
		}
	}
	if in.UnitID != nil {
		if _, err := s.units.FindUnique(ctx, *in.UnitID); err != nil {
			return nil, storeError(err, "unit")
		}
	}

	req := &models.Requirement{
		Title:       in.Title,
		Description: in.Description,
		BuyerID:     in.BuyerID,
		CategoryID:  in.CategoryID,
		BrandID:     in.BrandID,
		UnitID:      in.UnitID,
		Quantity:    in.Quantity,
		TargetPrice: in.TargetPrice,
		Status:      models.RequirementPending,
	}
	if len(in.Specifications) > 0 {
		req.Specifications = datatypes.JSON(in.Specifications)
	}
	if err := s.requirements.Create(ctx, req); err != nil {
		return nil, storeError(err, "requirement")
	}
	return req, nil
}

func (s *RequirementService) List(ctx context.Context, p RequirementListParams) (*ListResult[models.Requirement], error) {
	f := db.Filter{Search: p.Search, Equals: map[string]any{}}
	if status := strings.ToUpper(strings.TrimSpace(p.Status)); status != "" {
		if err := validateField("status", status, "oneof=PENDING APPROVED REJECTED CLOSED"); err != nil {
			return nil, err
		}
		f.Equals["status"] = status
	}
	if p.CategoryID != nil {
		f.Equals["category_id"] = *p.CategoryID
	}
	if p.BuyerID != nil {
		f.Equals["buyer_id"] = *p.BuyerID
	}

	page, err := s.requirements.FindMany(ctx, db.ListOptions{
		Filter:    f,
		Page:      p.Page,
		Limit:     p.Limit,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
	})
	if err != nil {
		return nil, storeError(err, "requirement")
	}
	return mapPage(page, func(r *models.Requirement) models.Requirement { return *r }), nil
}

func (s *RequirementService) Get(ctx context.Context, id uint) (*models.Requirement, error) {
	req, err := s.requirements.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "requirement")
	}
	return req, nil
}

// Review approves or rejects a pending requirement on behalf of reviewerID.
func (s *RequirementService) Review(ctx context.Context, id, reviewerID uint, in ReviewRequirementInput) (*models.Requirement, error) {
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	in.RejectionReason = strings.TrimSpace(in.RejectionReason)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if in.Status == string(models.RequirementRejected) && in.RejectionReason == "" {
		return nil, Validation("rejectionReason is required when rejecting")
	}

	req, err := s.requirements.FindUnique(ctx, id)
	if err != nil {
		return nil, storeError(err, "requirement")
	}
	if req.Status != models.RequirementPending {
		return nil, Conflict("requirement is already %s", req.Status)
	}

	now := s.now()
	changes := map[string]any{"status": in.Status}
	if in.Status == string(models.RequirementApproved) {
		changes["approved_by_id"] = reviewerID
		changes["approved_at"] = now
	} else {
		changes["rejected_at"] = now
		changes["rejection_reason"] = in.RejectionReason
	}

	updated, err := s.requirements.Update(ctx, id, changes)
	if err != nil {
		return nil, storeError(err, "requirement")
	}
	return updated, nil
}
