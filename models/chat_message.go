package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength bounds the text of a single chat message, in characters.
const MaxMessageLength = 500

// ChatMessage is one directed message between an admin and a mitra.
// Messages are conversation history: created on send, mutated only by the
// read acknowledgement, never deleted. IsRead transitions false to true
// exactly once.
type ChatMessage struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	SenderID     string    `gorm:"size:36;not null;index" json:"sender_id"`
	SenderRole   string    `gorm:"not null" json:"sender_role"` // "admin" or "mitra"
	SenderName   string    `gorm:"not null" json:"sender_name"`
	ReceiverID   string    `gorm:"size:36;not null;index" json:"receiver_id"`
	ReceiverRole string    `gorm:"not null" json:"receiver_role"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	IsRead       bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ChatMessage model
func (ChatMessage) TableName() string {
	return "chat_messages"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
