package repository

import (
	"testing"

	"github.com/decoderzhub/snapreme/app/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(t.TempDir()+"/snapreme.db"), &gorm.Config{})
	if err != nil {
		t.Fatalf("sqlite open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Creator{},
		&models.FanProfile{},
		&models.PpmThread{},
		&models.PpmMessage{},
		&models.Gift{},
		&models.Post{},
		&models.ContentPackage{},
		&models.PaymentWebhookEvent{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	return db
}
