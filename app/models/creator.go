package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Creator is the payee-facing profile of a user who publishes content.
// StripeConnectID is empty until the creator completes payout onboarding;
// every creator-payable checkout requires it to be set.
type Creator struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	UserID                 uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User                   User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Handle                 string         `gorm:"uniqueIndex;type:varchar(100);not null" json:"handle" validate:"required,min=2,max=100"`
	DisplayName            string         `gorm:"type:varchar(150)" json:"display_name" validate:"max=150"`
	Bio                    string         `gorm:"type:text;default:null" json:"bio" validate:"max=1000"`
	StripeConnectID        string         `gorm:"type:varchar(100);default:''" json:"-"`
	StripeProductID        string         `gorm:"type:varchar(100);default:''" json:"-"`
	StripePriceID          string         `gorm:"type:varchar(100);default:''" json:"-"`
	SubscriptionPriceCents int64          `gorm:"not null;default:0" json:"subscription_price_cents"`
	LifetimeCoinRevenue    int64          `gorm:"not null;default:0" json:"lifetime_coin_revenue"`
	CreatedAt              time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

func (cr *Creator) Validate() error {
	v := validator.New()

	return v.Struct(cr)
}

// HasPayoutAccount reports whether the creator finished payout onboarding.
func (cr *Creator) HasPayoutAccount() bool {
	return cr.StripeConnectID != ""
}
