package repository

import (
	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// creatorRepository implements the CreatorRepository interface
type creatorRepository struct {
	db *gorm.DB
}

// NewCreatorRepository creates a new creator repository instance
func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &creatorRepository{db: db}
}

// GetByID retrieves a creator by their ID
func (r *creatorRepository) GetByID(id uint) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.First(&creator, id).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// GetByUserID retrieves the creator profile belonging to a user
func (r *creatorRepository) GetByUserID(userID uint) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.Where("user_id = ?", userID).First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// GetByHandle retrieves a creator by their public handle
func (r *creatorRepository) GetByHandle(handle string) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.Where("handle = ?", handle).First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// Create creates a new creator profile
func (r *creatorRepository) Create(creator *models.Creator) error {
	return r.db.Create(creator).Error
}

// Update updates an existing creator profile
func (r *creatorRepository) Update(creator *models.Creator) error {
	return r.db.Save(creator).Error
}

// AddCoinRevenue increments the creator's lifetime coin revenue counter
func (r *creatorRepository) AddCoinRevenue(creatorID uint, coins int64) error {
	return r.db.Model(&models.Creator{}).Where("id = ?", creatorID).
		UpdateColumn("lifetime_coin_revenue", gorm.Expr("lifetime_coin_revenue + ?", coins)).Error
}
