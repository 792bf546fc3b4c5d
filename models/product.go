package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a seller listing.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	CategoryID  *uint           `gorm:"index" json:"categoryId"`
	BrandID     *uint           `gorm:"index" json:"brandId"`
	UnitID      *uint           `gorm:"index" json:"unitId"`
	SellerID    uint            `gorm:"index;not null" json:"sellerId"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	MOQ         decimal.Decimal `gorm:"column:moq;type:decimal(20,4);not null" json:"moq"`
	Status      string          `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}
