package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationApplied      ApplicationStatus = "Applied"
	ApplicationInterviewing ApplicationStatus = "Interviewing"
	ApplicationOffer        ApplicationStatus = "Offer"
	ApplicationRejected     ApplicationStatus = "Rejected"
	ApplicationSaved        ApplicationStatus = "Saved"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationInterviewing, ApplicationOffer, ApplicationRejected, ApplicationSaved:
		return true
	}
	return false
}

// JobApplication is a tracked application. ResumeIDUsed is a loose link to a
// StoredResume and is never checked against the library.
type JobApplication struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle     string            `gorm:"type:text;not null" json:"jobTitle"`
	Company      string            `gorm:"type:text;not null" json:"company"`
	Status       ApplicationStatus `gorm:"type:text;not null;default:'Saved'" json:"status"`
	DateApplied  time.Time         `gorm:"type:date" json:"dateApplied"`
	ResumeIDUsed *uuid.UUID        `gorm:"type:uuid" json:"resumeIdUsed,omitempty"`
	CreatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
