package repository

import (
	"time"

	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// threadRepository implements the ThreadRepository interface
type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new thread repository instance
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// GetByID retrieves a thread by its ID
func (r *threadRepository) GetByID(id uint) (*models.PpmThread, error) {
	var thread models.PpmThread
	err := r.db.First(&thread, id).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetByUUID retrieves a thread by its public UUID
func (r *threadRepository) GetByUUID(uuid string) (*models.PpmThread, error) {
	var thread models.PpmThread
	err := r.db.Where("uuid = ?", uuid).First(&thread).Error
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// FindOrCreate returns the single thread for a (creator, fan) pair,
// creating it on first contact. The insert ignores conflicts on the
// unique (creator_id, fan_id) index and re-reads, so two concurrent
// first messages still end up with exactly one thread row.
func (r *threadRepository) FindOrCreate(creatorID, fanID uint) (*models.PpmThread, error) {
	thread := models.PpmThread{CreatorID: creatorID, FanID: fanID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "creator_id"},
			{Name: "fan_id"},
		},
		DoNothing: true,
	}).Create(&thread).Error; err != nil {
		return nil, err
	}

	var stored models.PpmThread
	if err := r.db.Where("creator_id = ? AND fan_id = ?", creatorID, fanID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByFan retrieves all threads a fan participates in, latest first
func (r *threadRepository) ListByFan(fanID uint) ([]models.PpmThread, error) {
	var threads []models.PpmThread
	err := r.db.Where("fan_id = ?", fanID).
		Order("last_message_at DESC").Find(&threads).Error
	return threads, err
}

// ListByCreator retrieves all threads of a creator, latest first
func (r *threadRepository) ListByCreator(creatorID uint) ([]models.PpmThread, error) {
	var threads []models.PpmThread
	err := r.db.Where("creator_id = ?", creatorID).
		Order("last_message_at DESC").Find(&threads).Error
	return threads, err
}

// Touch updates the thread's last_message_at marker
func (r *threadRepository) Touch(threadID uint, at time.Time) error {
	return r.db.Model(&models.PpmThread{}).Where("id = ?", threadID).
		UpdateColumn("last_message_at", at).Error
}

// AppendMessage inserts a new message event; history is append-only
func (r *threadRepository) AppendMessage(msg *models.PpmMessage) error {
	return r.db.Create(msg).Error
}

// GetMessages retrieves a page of messages for a thread in send order
func (r *threadRepository) GetMessages(threadID uint, offset, limit int) ([]models.PpmMessage, error) {
	var messages []models.PpmMessage
	err := r.db.Where("thread_id = ?", threadID).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&messages).Error
	return messages, err
}

// CountMessages returns the total number of messages in a thread
func (r *threadRepository) CountMessages(threadID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PpmMessage{}).Where("thread_id = ?", threadID).Count(&count).Error
	return count, err
}
