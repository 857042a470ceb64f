package repository

import (
	"context"

	"github.com/fadilmartias/resume-api/internal/model"
	"gorm.io/gorm"
)

type ResumeMetadataRepository struct {
	db *gorm.DB
}

func NewResumeMetadataRepository(db *gorm.DB) *ResumeMetadataRepository {
	return &ResumeMetadataRepository{db}
}

// Create inserts the row and lets the database generate its ID, which gorm reads back
// into meta.
func (r *ResumeMetadataRepository) Create(ctx context.Context, meta *model.ResumeMetadata) error {
	return r.db.WithContext(ctx).Create(meta).Error
}
