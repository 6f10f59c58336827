package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/config"
	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/middleware"
	"github.com/amey40375/getshiny-mobile-care/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Order{},
		&models.MitraProfile{},
		&models.ChatMessage{},
		&models.Service{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	catalog := []models.Service{
		{ServiceKey: "cleaning", ServiceName: "Cleaning", Description: "Home and office cleaning", Price: "Rp 50.000/jam"},
		{ServiceKey: "laundry", ServiceName: "Laundry", Description: "Pickup laundry service", Price: "Rp 8.000/kg"},
	}
	if err := db.Create(&catalog).Error; err != nil {
		t.Fatalf("Failed to seed service catalog: %v", err)
	}

	config.SetDB(db)
	Init(db, events.New())
	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// mockAuthMiddleware simulates the Auth0 JWT middleware for testing.
// It sets up the context exactly as the real EnsureValidToken middleware does.
func mockAuthMiddleware(accountID, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", accountID)
		c.Set("access_token", accessToken)

		mockClaims := &validator.ValidatedClaims{
			CustomClaims: &middleware.CustomClaims{Role: role},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// createTestProfile inserts a profile row for an account.
func createTestProfile(t *testing.T, db *gorm.DB, accountID, role string) *models.Profile {
	t.Helper()

	profile := models.Profile{
		AccountID: accountID,
		Email:     accountID + "@example.com",
		Name:      "Profile " + accountID,
		Role:      role,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return &profile
}

// createAcceptedMitra inserts both a profile and an ACCEPTED application.
func createAcceptedMitra(t *testing.T, db *gorm.DB, accountID string) *models.Profile {
	t.Helper()

	profile := createTestProfile(t, db, accountID, models.RoleMitra)
	application := models.MitraProfile{
		UserID:       accountID,
		Name:         "Mitra " + accountID,
		Address:      "Jl. Mitra No. 1",
		WhatsApp:     "0812000000",
		Email:        accountID + "@example.com",
		WorkLocation: "Jakarta Selatan",
		Status:       models.ApplicationAccepted,
	}
	if err := db.Create(&application).Error; err != nil {
		t.Fatalf("Failed to create mitra application: %v", err)
	}
	return profile
}

// doJSON executes a JSON request against the router and decodes the
// response envelope.
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
		}
	}
	return w, response
}

// errorCode extracts error.code from a response envelope.
func errorCode(response map[string]interface{}) string {
	errData, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errData["code"].(string)
	return code
}
