package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is a buyer's proposal against a seller listing.
type Bid struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ProductID uint            `gorm:"index;not null" json:"productId"`
	BuyerID   uint            `gorm:"index;not null" json:"buyerId"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Status    string          `gorm:"size:20;not null;default:PENDING" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
	Logistics []Logistics     `gorm:"foreignKey:BidID" json:"-"`
}
