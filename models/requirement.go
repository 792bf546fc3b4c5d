package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type RequirementStatus string

const (
	RequirementPending  RequirementStatus = "PENDING"
	RequirementApproved RequirementStatus = "APPROVED"
	RequirementRejected RequirementStatus = "REJECTED"
	RequirementClosed   RequirementStatus = "CLOSED"
)

// Requirement is demand posted by a buyer. Admins approve or reject it
// before sellers can respond with offers.
type Requirement struct {
	ID              uint                `gorm:"primaryKey" json:"id"`
	Title           string              `gorm:"size:200;not null" json:"title"`
	Description     string              `gorm:"type:text" json:"description"`
	BuyerID         uint                `gorm:"index;not null" json:"buyerId"`
	CategoryID      uint                `gorm:"index;not null" json:"categoryId"`
	BrandID         *uint               `gorm:"index" json:"brandId"`
	UnitID          *uint               `gorm:"index" json:"unitId"`
	Quantity        decimal.Decimal     `gorm:"type:decimal(20,4);not null" json:"quantity"`
	TargetPrice     decimal.NullDecimal `gorm:"type:decimal(20,4)" json:"targetPrice"`
	Specifications  datatypes.JSON      `json:"specifications"`
	Status          RequirementStatus   `gorm:"size:20;not null;default:PENDING;index" json:"status"`
	ApprovedByID    *uint               `json:"approvedById"`
	ApprovedAt      *time.Time          `json:"approvedAt"`
	RejectedAt      *time.Time          `json:"rejectedAt"`
	RejectionReason string              `gorm:"type:text" json:"rejectionReason"`
	CreatedAt       time.Time           `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time           `gorm:"autoUpdateTime" json:"updatedAt"`
	Offers          []Offer             `gorm:"foreignKey:RequirementID" json:"-"`
}
