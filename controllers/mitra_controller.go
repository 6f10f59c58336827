package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/amey40375/getshiny-mobile-care/middleware"
	"github.com/amey40375/getshiny-mobile-care/models"
	"github.com/amey40375/getshiny-mobile-care/services"
)

// DecideMitraRequest represents the request body for deciding an application
type DecideMitraRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// RegisterMitra handles POST /api/v1/mitra/register - creates a PENDING
// mitra application for the signed-in account
func RegisterMitra(c *gin.Context) {
	accountID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	var req services.MitraRegistration
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

	profile, err := mitraService.Register(accountID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}

// GetMyMitraProfile handles GET /api/v1/mitra/me - returns the caller's
// application, with a presigned document URL when one is attached
func GetMyMitraProfile(c *gin.Context) {
	accountID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	profile, err := mitraService.GetByUserID(accountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	attachDocumentURL(profile)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// ListMitraApplications handles GET /api/v1/mitra/applications - lists
// applications for admin review, optionally filtered by ?status=
func ListMitraApplications(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}
	if !requireProfileRole(c, profile, models.RoleAdmin) {
		return
	}

	var statusFilter *models.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid status filter",
				},
			})
			return
		}
		statusFilter = &status
	}

	applications, err := mitraService.ListByStatus(statusFilter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	for i := range applications {
		attachDocumentURL(&applications[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    applications,
	})
}

// DecideMitraApplication handles POST /api/v1/mitra/applications/:id/decide
// - records an administrator's accept/reject decision
func DecideMitraApplication(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}
	if !requireProfileRole(c, profile, models.RoleAdmin) {
		return
	}

	var req DecideMitraRequest
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

	application, err := mitraService.Decide(c.Param("id"), models.ApplicationStatus(req.Decision))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    application,
	})
}

// attachDocumentURL fills the computed presigned URL for a stored identity
// document. Presign failures only log; the profile itself is still usable.
func attachDocumentURL(profile *models.MitraProfile) {
	if profile.KTPKey == nil {
		return
	}
	s3Service := services.GetS3Service()
	if s3Service == nil {
		return
	}
	url, err := s3Service.GetPresignedURL(*profile.KTPKey)
	if err != nil {
		log.Warnf("failed to presign document URL for application %s: %v", profile.ID, err)
		return
	}
	profile.KTPURL = &url
}
