package spend

import (
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the spend orchestrator.
// WithTx runs fn against a transactional copy of the repository; every
// monetized action performs its debit and event append inside one such
// transaction so a failed append rolls the debit back.
type Repository interface {
	WithTx(fn func(Repository) error) error
	GetThread(id uint) (*models.PpmThread, error)
	FindOrCreateThread(creatorID, fanID uint) (*models.PpmThread, error)
	GetCreator(id uint) (*models.Creator, error)
	GetActiveGiftByEmoji(emoji string) (*models.Gift, error)
	GetWalletBalance(userID uint) (int64, error)
	DebitWallet(userID uint, amount int64) error
	AppendMessage(msg *models.PpmMessage) error
	GetMessages(threadID uint, offset, limit int) ([]models.PpmMessage, error)
	TouchThread(threadID uint, at time.Time) error
	ListThreadsByFan(fanID uint) ([]models.PpmThread, error)
	ListThreadsByCreator(creatorID uint) ([]models.PpmThread, error)
	GetCreatorByUserID(userID uint) (*models.Creator, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a spend repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) GetThread(id uint) (*models.PpmThread, error) {
	return repository.NewThreadRepository(r.db).GetByID(id)
}

func (r *gormRepository) FindOrCreateThread(creatorID, fanID uint) (*models.PpmThread, error) {
	return repository.NewThreadRepository(r.db).FindOrCreate(creatorID, fanID)
}

func (r *gormRepository) GetCreator(id uint) (*models.Creator, error) {
	return repository.NewCreatorRepository(r.db).GetByID(id)
}

func (r *gormRepository) GetActiveGiftByEmoji(emoji string) (*models.Gift, error) {
	return repository.NewGiftRepository(r.db).GetActiveByEmoji(emoji)
}

func (r *gormRepository) GetWalletBalance(userID uint) (int64, error) {
	return repository.NewWalletRepository(r.db).GetBalance(userID)
}

func (r *gormRepository) DebitWallet(userID uint, amount int64) error {
	return repository.NewWalletRepository(r.db).Debit(userID, amount)
}

func (r *gormRepository) AppendMessage(msg *models.PpmMessage) error {
	return repository.NewThreadRepository(r.db).AppendMessage(msg)
}

func (r *gormRepository) GetMessages(threadID uint, offset, limit int) ([]models.PpmMessage, error) {
	return repository.NewThreadRepository(r.db).GetMessages(threadID, offset, limit)
}

func (r *gormRepository) TouchThread(threadID uint, at time.Time) error {
	return repository.NewThreadRepository(r.db).Touch(threadID, at)
}

func (r *gormRepository) ListThreadsByFan(fanID uint) ([]models.PpmThread, error) {
	return repository.NewThreadRepository(r.db).ListByFan(fanID)
}

func (r *gormRepository) ListThreadsByCreator(creatorID uint) ([]models.PpmThread, error) {
	return repository.NewThreadRepository(r.db).ListByCreator(creatorID)
}

func (r *gormRepository) GetCreatorByUserID(userID uint) (*models.Creator, error) {
	return repository.NewCreatorRepository(r.db).GetByUserID(userID)
}
