package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile roles. Every signed-in account has exactly one profile row.
const (
	RoleUser  = "user"
	RoleMitra = "mitra"
	RoleAdmin = "admin"
)

// Profile represents an account in the system (customer, mitra or admin).
// AccountID is the stable identity from the auth provider ('sub' claim).
type Profile struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	AccountID string    `gorm:"uniqueIndex;not null" json:"account_id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"not null;default:'user';index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
