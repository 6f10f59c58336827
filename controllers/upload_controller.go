package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amey40375/getshiny-mobile-care/middleware"
	"github.com/amey40375/getshiny-mobile-care/services"
	"github.com/amey40375/getshiny-mobile-care/utils"
)

// UploadKTPDocument handles POST /api/v1/uploads/ktp - uploads the caller's
// identity document and attaches it to their mitra application
func UploadKTPDocument(c *gin.Context) {
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

	fileHeader, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A 'document' file field is required",
			},
		})
		return
	}

	if err := utils.ValidateDocument(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE",
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "Document storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadDocument(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store the document",
			},
		})
		return
	}

	profile, err := mitraService.AttachDocument(accountID, s3Key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	attachDocumentURL(profile)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    profile,
	})
}
