package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PpmThread is a pay-per-message conversation channel between one creator
// and one fan. Exactly one thread exists per (creator, fan) pair; callers
// go through FindOrCreateThread instead of creating rows directly.
type PpmThread struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UUID          string     `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	CreatorID     uint       `gorm:"not null;uniqueIndex:ux_ppm_threads_creator_fan,priority:1" json:"creator_id"`
	FanID         uint       `gorm:"not null;uniqueIndex:ux_ppm_threads_creator_fan,priority:2" json:"fan_id"`
	LastMessageAt *time.Time `gorm:"type:timestamp;default:null" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate assigns a public UUID before the row is inserted.
func (t *PpmThread) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return nil
}
