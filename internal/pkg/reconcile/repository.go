package reconcile

import (
	"github.com/decoderzhub/snapreme/app/models"
	"github.com/decoderzhub/snapreme/app/repository"
	"gorm.io/gorm"
)

// Repository provides the storage operations of webhook reconciliation.
type Repository interface {
	WithTx(fn func(Repository) error) error
	RecordEvent(event *models.PaymentWebhookEvent) (created bool, stored *models.PaymentWebhookEvent, err error)
	MarkEventProcessed(id uint, processingError string) (claimed bool, err error)
	CreditWallet(userID uint, coins int64) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a reconcile repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) RecordEvent(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error) {
	return repository.NewWebhookEventRepository(r.db).CreateIfNotExists(event)
}

func (r *gormRepository) MarkEventProcessed(id uint, processingError string) (bool, error) {
	return repository.NewWebhookEventRepository(r.db).MarkProcessed(id, processingError)
}

func (r *gormRepository) CreditWallet(userID uint, coins int64) error {
	return repository.NewWalletRepository(r.db).Credit(userID, coins)
}
