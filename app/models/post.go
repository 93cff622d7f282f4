package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a priced unlockable artifact. The checkout builder reads the
// unlock price and the owning creator to build a one-time line item.
type Post struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UUID             string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	CreatorID        uint           `gorm:"not null;index" json:"creator_id"`
	Creator          Creator        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title            string         `gorm:"type:varchar(200)" json:"title"`
	MediaURL         string         `gorm:"type:varchar(500)" json:"media_url"`
	IsPremium        bool           `gorm:"not null;default:false" json:"is_premium"`
	UnlockPriceCents int64          `gorm:"not null;default:0" json:"unlock_price_cents"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a public UUID before the row is inserted.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
