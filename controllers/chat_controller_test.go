package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amey40375/getshiny-mobile-care/models"
)

func TestSendChatMessageEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	router := setupTestRouter()
	router.POST("/chat/messages", mockAuthMiddleware("mitra-1", "mitra", "token"), SendChatMessage)

	// Receiver resolved through the directory when omitted.
	w, response := doJSON(t, router, http.MethodPost, "/chat/messages", map[string]interface{}{
		"receiver_role": "admin",
		"message":       "Halo admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "admin-1", data["receiver_id"])
	assert.Equal(t, "mitra-1", data["sender_id"])
	assert.Equal(t, false, data["is_read"])
}

func TestSendChatMessageValidation(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	router := setupTestRouter()
	router.POST("/chat/messages", mockAuthMiddleware("mitra-1", "mitra", "token"), SendChatMessage)

	// Binding failure: message is required.
	w, response := doJSON(t, router, http.MethodPost, "/chat/messages", map[string]interface{}{
		"receiver_role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestSendChatMessageNoAdmin(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	router := setupTestRouter()
	router.POST("/chat/messages", mockAuthMiddleware("mitra-1", "mitra", "token"), SendChatMessage)

	w, response := doJSON(t, router, http.MethodPost, "/chat/messages", map[string]interface{}{
		"receiver_role": "admin",
		"message":       "anyone there?",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(response))

	// Nothing persisted.
	var count int64
	require.NoError(t, db.Model(&models.ChatMessage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendChatMessageForbiddenForPlainUsers(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)
	createTestProfile(t, db, "user-1", models.RoleUser)

	router := setupTestRouter()
	router.POST("/chat/messages", mockAuthMiddleware("user-1", "user", "token"), SendChatMessage)

	w, response := doJSON(t, router, http.MethodPost, "/chat/messages", map[string]interface{}{
		"receiver_role": "admin",
		"message":       "hi",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(response))
}

func TestGetChatThreadEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	sendRouter := setupTestRouter()
	sendRouter.POST("/chat/messages", mockAuthMiddleware("mitra-1", "mitra", "token"), SendChatMessage)
	for _, text := range []string{"one", "two"} {
		w, _ := doJSON(t, sendRouter, http.MethodPost, "/chat/messages", map[string]interface{}{
			"receiver_role": "admin",
			"message":       text,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// The mitra reads the thread with the symbolic "admin" party.
	router := setupTestRouter()
	router.GET("/chat/thread/:partyId", mockAuthMiddleware("mitra-1", "mitra", "token"), GetChatThread)

	w, response := doJSON(t, router, http.MethodGet, "/chat/thread/admin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := response["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "one", data[0].(map[string]interface{})["message"])
	assert.Equal(t, "two", data[1].(map[string]interface{})["message"])
}

func TestMarkMessagesReadEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	message := models.ChatMessage{
		SenderID: "mitra-1", SenderRole: "mitra", SenderName: "Siti",
		ReceiverID: "admin-1", ReceiverRole: "admin", Message: "hello",
	}
	require.NoError(t, db.Create(&message).Error)

	router := setupTestRouter()
	router.POST("/chat/read", mockAuthMiddleware("admin-1", "admin", "token"), MarkMessagesRead)

	w, _ := doJSON(t, router, http.MethodPost, "/chat/read",
		map[string]interface{}{"message_ids": []string{message.ID}})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.ChatMessage
	require.NoError(t, db.First(&stored, "id = ?", message.ID).Error)
	assert.True(t, stored.IsRead)

	// Idempotent: same call again still succeeds.
	w, _ = doJSON(t, router, http.MethodPost, "/chat/read",
		map[string]interface{}{"message_ids": []string{message.ID}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUnreadCountEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)

	for i := 0; i < 2; i++ {
		message := models.ChatMessage{
			SenderID: "mitra-1", SenderRole: "mitra", SenderName: "Siti",
			ReceiverID: "admin-1", ReceiverRole: "admin", Message: "hello",
		}
		require.NoError(t, db.Create(&message).Error)
	}

	router := setupTestRouter()
	router.GET("/chat/unread", mockAuthMiddleware("admin-1", "admin", "token"), GetUnreadCount)

	w, response := doJSON(t, router, http.MethodGet, "/chat/unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["unread"])
}
