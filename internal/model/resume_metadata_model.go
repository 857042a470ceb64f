package model

import (
	"time"

	"github.com/google/uuid"
)

type ResumeMetadata struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FileName    string    `gorm:"type:text;not null" json:"file_name"`
	StoragePath string    `gorm:"type:text;not null" json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *ResumeMetadata) TableName() string {
	return "resume_metadata"
}
