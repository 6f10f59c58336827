package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amey40375/getshiny-mobile-care/models"
)

func TestRegisterMitraEndpoint(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		name           string
		accountID      string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
	}{
		{
			name:      "Successfully register mitra",
			accountID: "acct-1",
			requestBody: map[string]interface{}{
				"name":          "Siti",
				"address":       "Jl. Mawar No. 2",
				"whatsapp":      "081298765432",
				"email":         "siti@example.com",
				"work_location": "Bandung",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:      "Fail with blank name",
			accountID: "acct-2",
			requestBody: map[string]interface{}{
				"name":          "  ",
				"address":       "Jl. Mawar No. 2",
				"whatsapp":      "081298765432",
				"email":         "siti2@example.com",
				"work_location": "Bandung",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:      "Fail with duplicate application",
			accountID: "acct-1",
			requestBody: map[string]interface{}{
				"name":          "Siti",
				"address":       "Jl. Mawar No. 2",
				"whatsapp":      "081298765432",
				"email":         "siti@example.com",
				"work_location": "Bandung",
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "DUPLICATE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/mitra/register", mockAuthMiddleware(tt.accountID, "user", "token"), RegisterMitra)

			w, response := doJSON(t, router, http.MethodPost, "/mitra/register", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
			} else {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "PENDING", data["status"])
			}
		})
	}
}

func TestDecideMitraEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)

	application := models.MitraProfile{
		UserID: "acct-z", Name: "Z", Address: "Jl. Z", WhatsApp: "0812",
		Email: "z@example.com", WorkLocation: "Jakarta",
		Status: models.ApplicationPending,
	}
	require.NoError(t, db.Create(&application).Error)

	router := setupTestRouter()
	router.POST("/mitra/applications/:id/decide",
		mockAuthMiddleware("admin-1", "admin", "token"), DecideMitraApplication)

	// Accept.
	w, response := doJSON(t, router, http.MethodPost,
		"/mitra/applications/"+application.ID+"/decide",
		map[string]interface{}{"decision": "ACCEPTED"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ACCEPTED", response["data"].(map[string]interface{})["status"])

	// Deciding again is rejected and the stored status stays ACCEPTED.
	w, response = doJSON(t, router, http.MethodPost,
		"/mitra/applications/"+application.ID+"/decide",
		map[string]interface{}{"decision": "REJECTED"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(response))

	var stored models.MitraProfile
	require.NoError(t, db.First(&stored, "id = ?", application.ID).Error)
	assert.Equal(t, models.ApplicationAccepted, stored.Status)
}

func TestDecideMitraRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "mitra-1", models.RoleMitra)

	router := setupTestRouter()
	router.POST("/mitra/applications/:id/decide",
		mockAuthMiddleware("mitra-1", "mitra", "token"), DecideMitraApplication)

	w, response := doJSON(t, router, http.MethodPost,
		"/mitra/applications/some-id/decide",
		map[string]interface{}{"decision": "ACCEPTED"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(response))
}

func TestListMitraApplicationsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createTestProfile(t, db, "admin-1", models.RoleAdmin)

	for i, status := range []models.ApplicationStatus{
		models.ApplicationPending, models.ApplicationAccepted,
	} {
		application := models.MitraProfile{
			UserID: "acct-" + string(rune('a'+i)), Name: "N", Address: "Jl.",
			WhatsApp: "0812", Email: string(rune('a'+i)) + "@example.com",
			WorkLocation: "Jakarta", Status: status,
		}
		require.NoError(t, db.Create(&application).Error)
	}

	router := setupTestRouter()
	router.GET("/mitra/applications", mockAuthMiddleware("admin-1", "admin", "token"), ListMitraApplications)

	w, response := doJSON(t, router, http.MethodGet, "/mitra/applications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 2)

	w, response = doJSON(t, router, http.MethodGet, "/mitra/applications?status=PENDING", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	w, response = doJSON(t, router, http.MethodGet, "/mitra/applications?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestGetMyMitraProfileEndpoint(t *testing.T) {
	db := setupTestDB(t)
	createAcceptedMitra(t, db, "mitra-x")

	router := setupTestRouter()
	router.GET("/mitra/me", mockAuthMiddleware("mitra-x", "mitra", "token"), GetMyMitraProfile)

	w, response := doJSON(t, router, http.MethodGet, "/mitra/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "mitra-x", data["user_id"])
	assert.Equal(t, "ACCEPTED", data["status"])

	// Account without an application.
	routerNone := setupTestRouter()
	routerNone.GET("/mitra/me", mockAuthMiddleware("acct-none", "user", "token"), GetMyMitraProfile)
	w, response = doJSON(t, routerNone, http.MethodGet, "/mitra/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}
