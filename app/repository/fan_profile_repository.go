package repository

import (
	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// fanProfileRepository implements the FanProfileRepository interface
type fanProfileRepository struct {
	db *gorm.DB
}

// NewFanProfileRepository creates a new fan profile repository instance
func NewFanProfileRepository(db *gorm.DB) FanProfileRepository {
	return &fanProfileRepository{db: db}
}

// GetOrCreate returns the fan profile for a user, creating it if missing
func (r *fanProfileRepository) GetOrCreate(userID uint) (*models.FanProfile, error) {
	return models.GetOrCreateFanProfile(r.db, userID)
}

// Update updates an existing fan profile
func (r *fanProfileRepository) Update(profile *models.FanProfile) error {
	return r.db.Save(profile).Error
}
