package models

import (
	"time"

	"gorm.io/gorm"
)

// ContentPackage is a bundle of posts sold as one one-time purchase.
type ContentPackage struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	Creator     Creator        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title       string         `gorm:"type:varchar(200)" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	PriceCents  int64          `gorm:"not null;default:0" json:"price_cents"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
