package models

import "time"

// Gift is a catalog entry managed by admin tooling. The spend path only
// reads it to resolve the declared coin cost for a gift message.
type Gift struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Emoji     string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"emoji"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	CoinCost  int64     `gorm:"not null" json:"coin_cost"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
