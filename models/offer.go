package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a seller's proposal against a buyer requirement.
type Offer struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	RequirementID uint            `gorm:"index;not null" json:"requirementId"`
	SellerID      uint            `gorm:"index;not null" json:"sellerId"`
	Price         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Status        string          `gorm:"size:20;not null;default:PENDING" json:"status"`
	Message       string          `gorm:"type:text" json:"message"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Logistics     []Logistics     `gorm:"foreignKey:OfferID" json:"-"`
}
