package models

import (
	"time"

	"gorm.io/gorm"
)

// FanProfile caches payment-provider state for a paying fan. The Stripe
// customer id is stored after the first checkout so repeated checkouts
// reuse one customer record.
type FanProfile struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	StripeCustomerID string    `gorm:"type:varchar(100);default:''" json:"-"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateFanProfile returns the fan profile for a user, creating an
// empty one if none exists yet.
func GetOrCreateFanProfile(db *gorm.DB, userID uint) (*FanProfile, error) {
	var fp FanProfile
	if err := db.Where("user_id = ?", userID).First(&fp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			fp = FanProfile{UserID: userID}
			if err := db.Create(&fp).Error; err != nil {
				return nil, err
			}
			return &fp, nil
		}
		return nil, err
	}
	return &fp, nil
}
