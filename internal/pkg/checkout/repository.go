package checkout

import (
	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"gorm.io/gorm"
)

// Repository is the payee directory and customer cache used by the
// checkout builders. It only reads priced artifacts and creator payout
// state, and writes back provider identifiers.
type Repository interface {
	GetUser(id uint) (*models.User, error)
	GetCreator(id uint) (*models.Creator, error)
	GetCreatorByUserID(userID uint) (*models.Creator, error)
	UpdateCreator(creator *models.Creator) error
	GetPost(id uint) (*models.Post, error)
	GetPackage(id uint) (*models.ContentPackage, error)
	GetOrCreateFanProfile(userID uint) (*models.FanProfile, error)
	UpdateFanProfile(profile *models.FanProfile) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a checkout repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) GetUser(id uint) (*models.User, error) {
	return repository.NewUserRepository(r.db).GetByID(id)
}

func (r *gormRepository) GetCreator(id uint) (*models.Creator, error) {
	return repository.NewCreatorRepository(r.db).GetByID(id)
}

func (r *gormRepository) GetCreatorByUserID(userID uint) (*models.Creator, error) {
	return repository.NewCreatorRepository(r.db).GetByUserID(userID)
}

func (r *gormRepository) UpdateCreator(creator *models.Creator) error {
	return repository.NewCreatorRepository(r.db).Update(creator)
}

func (r *gormRepository) GetPost(id uint) (*models.Post, error) {
	return repository.NewContentRepository(r.db).GetPostByID(id)
}

func (r *gormRepository) GetPackage(id uint) (*models.ContentPackage, error) {
	return repository.NewContentRepository(r.db).GetPackageByID(id)
}

func (r *gormRepository) GetOrCreateFanProfile(userID uint) (*models.FanProfile, error) {
	return repository.NewFanProfileRepository(r.db).GetOrCreate(userID)
}

func (r *gormRepository) UpdateFanProfile(profile *models.FanProfile) error {
	return repository.NewFanProfileRepository(r.db).Update(profile)
}
