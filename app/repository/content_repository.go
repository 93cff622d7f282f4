package repository

import (
	"github.com/decoderzhub/snapreme/app/models"
	"gorm.io/gorm"
)

// contentRepository implements the ContentRepository interface
type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository creates a new content repository instance
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

// GetPostByID retrieves a post by its ID
func (r *contentRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByUUID retrieves a post by its public UUID
func (r *contentRepository) GetPostByUUID(uuid string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("uuid = ?", uuid).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPackageByID retrieves a content package by its ID
func (r *contentRepository) GetPackageByID(id uint) (*models.ContentPackage, error) {
	var pkg models.ContentPackage
	err := r.db.First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ListPostsByCreator retrieves a page of a creator's posts, newest first
func (r *contentRepository) ListPostsByCreator(creatorID uint, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("creator_id = ?", creatorID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}
