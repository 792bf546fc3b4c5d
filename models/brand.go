package models

import "time"

type Brand struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Logo        string    `gorm:"size:500" json:"logo"`
	IsActive    bool      `gorm:"not null;index" json:"isActive"`
	CreatedByID *uint     `json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Products    []Product `gorm:"foreignKey:BrandID;constraint:OnDelete:SET NULL" json:"-"`
}
