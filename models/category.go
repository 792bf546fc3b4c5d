package models

import "time"

// Category is a catalog node. A category with a parent is a subcategory.
type Category struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `gorm:"size:500" json:"image"`
	ParentID    *uint      `gorm:"index" json:"parentId"`
	IsActive    bool       `gorm:"not null;index" json:"isActive"`
	SortOrder   int        `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Children    []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	Products    []Product  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}
