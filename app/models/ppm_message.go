package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PpmMessage is an append-only event in a pay-per-message thread. A
// message carries exactly one payload in practice: text, a tip, or a
// gift. CoinCost records what the sender was debited at send time.
// Rows are never updated or deleted.
type PpmMessage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	ThreadID     uint      `gorm:"not null;index" json:"thread_id"`
	Thread       PpmThread `gorm:"foreignKey:ThreadID" json:"-"`
	SenderID     uint      `gorm:"not null;index" json:"sender_id"`
	IsCreator    bool      `gorm:"not null;default:false" json:"is_creator"`
	Text         string    `gorm:"type:text" json:"text,omitempty"`
	IsPriority   bool      `gorm:"not null;default:false" json:"is_priority"`
	CoinCost     int64     `gorm:"not null;default:0" json:"coin_cost"`
	TipCents     int64     `gorm:"not null;default:0" json:"tip_cents,omitempty"`
	GiftEmoji    string    `gorm:"type:varchar(16);default:''" json:"gift_emoji,omitempty"`
	GiftCoinCost int64     `gorm:"not null;default:0" json:"gift_coin_cost,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate assigns a public UUID before the row is inserted.
func (m *PpmMessage) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == "" {
		m.UUID = uuid.New().String()
	}
	return nil
}

// IsTip reports whether the message payload is a tip.
func (m *PpmMessage) IsTip() bool {
	return m.TipCents > 0
}

// IsGift reports whether the message payload is a gift.
func (m *PpmMessage) IsGift() bool {
	return m.GiftEmoji != ""
}
