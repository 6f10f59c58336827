package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order represents one customer service request. Orders are retained for
// history and are never deleted; terminal states are DONE and CANCELLED.
type Order struct {
	ID               string      `gorm:"primaryKey;size:36" json:"id"`
	CustomerName     string      `gorm:"not null" json:"customer_name"`
	CustomerAddress  string      `gorm:"not null" json:"customer_address"`
	CustomerWhatsApp string      `gorm:"not null" json:"customer_whatsapp"`
	ServiceType      string      `gorm:"not null" json:"service_type"`
	Status           OrderStatus `gorm:"not null;default:'NEW';index" json:"status"`
	MitraID          *string     `gorm:"size:36;index" json:"mitra_id"` // account id of the assigned mitra, nil while NEW
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
