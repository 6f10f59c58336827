package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amey40375/getshiny-mobile-care/config"
	"github.com/amey40375/getshiny-mobile-care/models"
)

// ListServices handles GET /api/v1/services - returns the service catalog
// shown on the order intake form
func ListServices(c *gin.Context) {
	db := config.GetDB()

	var catalog []models.Service
	if err := db.Order("service_name ASC").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load service catalog",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    catalog,
	})
}
