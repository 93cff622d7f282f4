package repository

import (
	"errors"
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// ErrInsufficientFunds is returned by WalletRepository.Debit when the
// wallet balance is below the requested amount. The debit is rejected
// as a whole; the balance is never partially reduced.
var ErrInsufficientFunds = errors.New("insufficient funds")

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
}

// WalletRepository defines the interface for coin wallet operations
type WalletRepository interface {
	GetOrCreate(userID uint) (*models.Wallet, error)
	GetBalance(userID uint) (int64, error)
	// Debit subtracts amount from the wallet in a single conditional
	// update and returns ErrInsufficientFunds when balance < amount.
	Debit(userID uint, amount int64) error
	Credit(userID uint, amount int64) error
}

// ThreadRepository defines the interface for pay-per-message threads and
// their append-only message history
type ThreadRepository interface {
	GetByID(id uint) (*models.PpmThread, error)
	GetByUUID(uuid string) (*models.PpmThread, error)
	FindOrCreate(creatorID, fanID uint) (*models.PpmThread, error)
	ListByFan(fanID uint) ([]models.PpmThread, error)
	ListByCreator(creatorID uint) ([]models.PpmThread, error)
	Touch(threadID uint, at time.Time) error
	AppendMessage(msg *models.PpmMessage) error
	GetMessages(threadID uint, offset, limit int) ([]models.PpmMessage, error)
	CountMessages(threadID uint) (int64, error)
}

// GiftRepository defines the interface for the read-only gift catalog
type GiftRepository interface {
	GetActiveByEmoji(emoji string) (*models.Gift, error)
	ListActive() ([]models.Gift, error)
}

// CreatorRepository defines the interface for creator/payee lookups
type CreatorRepository interface {
	GetByID(id uint) (*models.Creator, error)
	GetByUserID(userID uint) (*models.Creator, error)
	GetByHandle(handle string) (*models.Creator, error)
	Create(creator *models.Creator) error
	Update(creator *models.Creator) error
	AddCoinRevenue(creatorID uint, coins int64) error
}

// ContentRepository defines the interface for priced unlockable artifacts
type ContentRepository interface {
	GetPostByID(id uint) (*models.Post, error)
	GetPostByUUID(uuid string) (*models.Post, error)
	GetPackageByID(id uint) (*models.ContentPackage, error)
	ListPostsByCreator(creatorID uint, offset, limit int) ([]models.Post, error)
}

// FanProfileRepository defines the interface for fan payment profiles
type FanProfileRepository interface {
	GetOrCreate(userID uint) (*models.FanProfile, error)
	Update(profile *models.FanProfile) error
}

// WebhookEventRepository defines the interface for idempotent webhook intake
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.PaymentWebhookEvent) (bool, *models.PaymentWebhookEvent, error)
	MarkProcessed(id uint, processingError string) (claimed bool, err error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Wallet       WalletRepository
	Thread       ThreadRepository
	Gift         GiftRepository
	Creator      CreatorRepository
	Content      ContentRepository
	FanProfile   FanProfileRepository
	WebhookEvent WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Wallet:       NewWalletRepository(db),
		Thread:       NewThreadRepository(db),
		Gift:         NewGiftRepository(db),
		Creator:      NewCreatorRepository(db),
		Content:      NewContentRepository(db),
		FanProfile:   NewFanProfileRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
	}
}
