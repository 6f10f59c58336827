package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the review state of a mitra application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

// Valid reports whether the status is one of the review states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// MitraProfile represents one account's application to become a service
// partner. Each account may apply exactly once; only an administrator's
// decision moves it out of PENDING.
type MitraProfile struct {
	ID           string            `gorm:"primaryKey;size:36" json:"id"`
	UserID       string            `gorm:"uniqueIndex;not null" json:"user_id"` // account id of the applicant
	Name         string            `gorm:"not null" json:"name"`
	Address      string            `gorm:"not null" json:"address"`
	WhatsApp     string            `gorm:"not null" json:"whatsapp"`
	Email        string            `gorm:"not null" json:"email"`
	WorkLocation string            `gorm:"not null" json:"work_location"`
	KTPKey       *string           `json:"ktp_key"`                      // S3 key of the uploaded identity document
	KTPURL       *string           `gorm:"-" json:"ktp_url,omitempty"`   // presigned URL, computed on read
	Status       ApplicationStatus `gorm:"not null;default:'PENDING';index" json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the MitraProfile model
func (MitraProfile) TableName() string {
	return "mitra_profiles"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *MitraProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
