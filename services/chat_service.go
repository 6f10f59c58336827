package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/models"
)

// ChatSend is one outgoing chat message. ReceiverID may be left empty when
// a mitra messages the admin role; the receiver is then resolved through
// the directory.
type ChatSend struct {
	SenderID     string `json:"sender_id"`
	SenderRole   string `json:"sender_role"`
	SenderName   string `json:"sender_name"`
	ReceiverID   string `json:"receiver_id"`
	ReceiverRole string `json:"receiver_role"`
	Message      string `json:"message"`
}

// ChatService relays free-text messages between the administrator and one
// mitra per conversation thread.
type ChatService struct {
	db        *gorm.DB
	hub       *events.Hub
	directory *Directory
}

// NewChatService creates a ChatService.
func NewChatService(db *gorm.DB, hub *events.Hub, directory *Directory) *ChatService {
	return &ChatService{db: db, hub: hub, directory: directory}
}

func validChatRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleMitra
}

// Send persists a message with read=false and notifies subscribers. If the
// receiver identity cannot be resolved, nothing is persisted.
func (s *ChatService) Send(input ChatSend) (*models.ChatMessage, error) {
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return nil, &ValidationError{Message: "message text is required"}
	}
	if utf8.RuneCountInString(input.Message) > models.MaxMessageLength {
		return nil, &ValidationError{Message: fmt.Sprintf("message exceeds %d characters", models.MaxMessageLength)}
	}
	if !validChatRole(input.SenderRole) || !validChatRole(input.ReceiverRole) {
		return nil, &ValidationError{Message: "chat roles must be admin or mitra"}
	}

	receiverID := input.ReceiverID
	if receiverID == "" {
		if input.ReceiverRole != models.RoleAdmin {
			return nil, &ValidationError{Message: "receiver id is required"}
		}
		adminID, err := s.directory.AdminID()
		if err != nil {
			return nil, err
		}
		receiverID = adminID
	}

	message := models.ChatMessage{
		SenderID:     input.SenderID,
		SenderRole:   input.SenderRole,
		SenderName:   input.SenderName,
		ReceiverID:   receiverID,
		ReceiverRole: input.ReceiverRole,
		Message:      input.Message,
		IsRead:       false,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to create chat message: %w", err)
	}

	log.WithFields(log.Fields{"message_id": message.ID, "sender_id": message.SenderID, "receiver_id": message.ReceiverID}).
		Info("chat message sent")
	s.hub.Publish(events.Event{Topic: events.TopicChat, Type: events.TypeChatMessage, Payload: message})
	return &message, nil
}

// FetchThread returns every message exchanged between two identities, in
// creation order. Timestamp assignment at persistence time is the sole
// ordering guarantee.
func (s *ChatService) FetchThread(partyA, partyB string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			partyA, partyB, partyB, partyA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return messages, nil
}

// MarkRead acknowledges messages for their receiver. Ids whose receiver is
// not the caller are ignored, and re-acknowledging an already-read message
// is a no-op.
func (s *ChatService) MarkRead(receiverID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	err := s.db.Model(&models.ChatMessage{}).
		Where("id IN ? AND receiver_id = ? AND is_read = ?", messageIDs, receiverID, false).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// UnreadCount returns how many unread messages an identity has waiting.
func (s *ChatService) UnreadCount(receiverID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
