package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Wallet holds a user's coin balance. One record per user, created lazily
// on the first balance read. The balance is only ever mutated through the
// conditional debit in the wallet repository and the top-up credit path,
// so coin_balance never drops below zero.
type Wallet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	CoinBalance int64     `gorm:"not null;default:0" json:"coin_balance"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateWallet returns the user's wallet, creating an empty one if
// none exists yet. Insert-or-ignore on the user_id unique index plus a
// re-read keeps concurrent first touches from failing on the duplicate
// key.
func GetOrCreateWallet(db *gorm.DB, userID uint) (*Wallet, error) {
	w := Wallet{UserID: userID, CoinBalance: 0}
	tx := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&w)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected > 0 {
		return &w, nil
	}

	var existing Wallet
	if err := db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
