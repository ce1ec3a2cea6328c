package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IndexStatus string

const (
	IndexQueued     IndexStatus = "queued"
	IndexProcessing IndexStatus = "processing"
	IndexCompleted  IndexStatus = "completed"
	IndexFailed     IndexStatus = "failed"
	IndexDisabled   IndexStatus = "disabled"
)

// StoredResume is a resume saved to the user's library together with the
// analysis produced for it. A partial unique index allows at most one
// primary row.
type StoredResume struct {
	ID          uuid.UUID                          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileName    string                             `gorm:"type:text;not null" json:"fileName"`
	MIMEType    string                             `gorm:"type:text" json:"mimeType"`
	StoredName  string                             `gorm:"type:text" json:"-"`
	FilePath    string                             `gorm:"type:text" json:"-"`
	Text        string                             `gorm:"type:text" json:"-"`
	Analysis    datatypes.JSONType[ResumeAnalysis] `json:"analysis"`
	IsPrimary   bool                               `gorm:"not null;default:false;uniqueIndex:idx_stored_resumes_single_primary,where:is_primary" json:"isPrimary"`
	IndexStatus IndexStatus                        `gorm:"type:text;not null;default:'queued'" json:"indexStatus"`
	IndexError  *string                            `gorm:"type:text" json:"indexError,omitempty"`
	UploadedAt  time.Time                          `gorm:"type:timestamp;default:now()" json:"uploadDate"`
	UpdatedAt   time.Time                          `gorm:"type:timestamp;default:now()" json:"updatedAt"`
}

func (StoredResume) TableName() string {
	return "stored_resumes"
}
