package repository

import (
	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// giftRepository implements the GiftRepository interface
type giftRepository struct {
	db *gorm.DB
}

// NewGiftRepository creates a new gift repository instance
func NewGiftRepository(db *gorm.DB) GiftRepository {
	return &giftRepository{db: db}
}

// GetActiveByEmoji resolves an active gift catalog entry by its emoji
func (r *giftRepository) GetActiveByEmoji(emoji string) (*models.Gift, error) {
	var gift models.Gift
	err := r.db.Where("emoji = ? AND is_active = ?", emoji, true).First(&gift).Error
	if err != nil {
		return nil, err
	}
	return &gift, nil
}

// ListActive retrieves all active gifts ordered by coin cost
func (r *giftRepository) ListActive() ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.Where("is_active = ?", true).Order("coin_cost ASC").Find(&gifts).Error
	return gifts, err
}
