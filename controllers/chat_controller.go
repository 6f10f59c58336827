package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amey40375/getshiny-mobile-care/models"
	"github.com/amey40375/getshiny-mobile-care/services"
)

// SendChatRequest represents the request body for sending a chat message.
// receiver_id may be omitted when a mitra messages the admin role.
type SendChatRequest struct {
	ReceiverID   string `json:"receiver_id"`
	ReceiverRole string `json:"receiver_role" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

// MarkReadRequest represents the request body for acknowledging messages
type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids" binding:"required"`
}

// SendChatMessage handles POST /api/v1/chat/messages - relays one message
// between the administrator and a mitra
func SendChatMessage(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	// Chat is a two-role relay: plain customer accounts have no thread.
	if profile.Role != models.RoleAdmin && profile.Role != models.RoleMitra {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only admin and mitra accounts can use chat",
			},
		})
		return
	}

	var req SendChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	message, err := chatService.Send(services.ChatSend{
		SenderID:     profile.AccountID,
		SenderRole:   profile.Role,
		SenderName:   profile.Name,
		ReceiverID:   req.ReceiverID,
		ReceiverRole: req.ReceiverRole,
		Message:      req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// GetChatThread handles GET /api/v1/chat/thread/:partyId - returns the
// caller's conversation with the given identity, oldest first. A mitra
// may pass "admin" to have the party resolved through the directory.
func GetChatThread(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	party := c.Param("partyId")
	if party == "admin" {
		adminID, err := directory.AdminID()
		if err != nil {
			respondServiceError(c, err)
			return
		}
		party = adminID
	}

	messages, err := chatService.FetchThread(profile.AccountID, party)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// MarkMessagesRead handles POST /api/v1/chat/read - acknowledges messages
// addressed to the caller. Idempotent.
func MarkMessagesRead(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	if err := chatService.MarkRead(profile.AccountID, req.MessageIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetUnreadCount handles GET /api/v1/chat/unread - returns the caller's
// unread message count
func GetUnreadCount(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	count, err := chatService.UnreadCount(profile.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"unread": count},
	})
}
