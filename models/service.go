package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is one entry in the fixed service catalog shown on the order
// intake form.
type Service struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	ServiceKey  string    `gorm:"uniqueIndex;not null" json:"service_key"`
	ServiceName string    `gorm:"not null" json:"service_name"`
	Description string    `gorm:"not null" json:"description"`
	Price       string    `gorm:"not null" json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
