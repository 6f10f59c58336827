package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amey40375/getshiny-mobile-care/events"
	"github.com/amey40375/getshiny-mobile-care/middleware"
	"github.com/amey40375/getshiny-mobile-care/models"
	"github.com/amey40375/getshiny-mobile-care/services"
)

var (
	orderService *services.OrderService
	mitraService *services.MitraService
	chatService  *services.ChatService
	directory    *services.Directory
	eventHub     *events.Hub
)

// Init wires the controllers to their services. Call once at startup and
// in test setup after the database is ready.
func Init(db *gorm.DB, hub *events.Hub) {
	eventHub = hub
	directory = services.NewDirectory(db)
	mitraService = services.NewMitraService(db)
	orderService = services.NewOrderService(db, hub, mitraService)
	chatService = services.NewChatService(db, hub, directory)
}

// respondServiceError maps the service error taxonomy onto the response
// envelope. Unknown errors become a 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		conflictErr   *services.ConflictError
		transitionErr *services.InvalidTransitionError
		duplicateErr  *services.DuplicateError
		notFoundErr   *services.NotFoundError
		authErr       *services.AuthorizationError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "VALIDATION_ERROR", "message": validationErr.Message},
		})
	case errors.As(err, &authErr):
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "FORBIDDEN", "message": authErr.Message},
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"code": "NOT_FOUND", "message": notFoundErr.Error()},
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": "CONFLICT", "message": conflictErr.Message},
		})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   gin.H{"code": "DUPLICATE", "message": duplicateErr.Message},
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error":   gin.H{"code": "INVALID_TRANSITION", "message": transitionErr.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   gin.H{"code": "INTERNAL_ERROR", "message": "An internal error occurred"},
		})
	}
}

// currentProfile resolves the caller's profile row from the validated
// token. It writes the error response and returns false when the caller
// cannot be resolved.
func currentProfile(c *gin.Context) (*models.Profile, bool) {
	accountID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	profile, err := directory.ProfileByAccountID(accountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return profile, true
}

// requireProfileRole checks the caller's stored role. The JWT role claim is
// gated at the route layer; the database row is authoritative here.
func requireProfileRole(c *gin.Context, profile *models.Profile, role string) bool {
	if profile.Role != role {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions for this operation",
			},
		})
		return false
	}
	return true
}
