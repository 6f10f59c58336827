package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amey40375/getshiny-mobile-care/models"
	"github.com/amey40375/getshiny-mobile-care/services"
)

// AssignOrderRequest represents the request body for assigning an order
type AssignOrderRequest struct {
	MitraID  string `json:"mitra_id" binding:"required"`
	Reassign bool   `json:"reassign"`
}

// AdvanceOrderRequest represents the request body for advancing an order
type AdvanceOrderRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitOrder handles POST /api/v1/orders - creates a new order from the
// public intake form. Customers order without an account, so this endpoint
// is unauthenticated.
func SubmitOrder(c *gin.Context) {
	var draft services.OrderDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
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

	order, err := orderService.Submit(draft)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists all orders (admin only)
func ListOrders(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}
	if !requireProfileRole(c, profile, models.RoleAdmin) {
		return
	}

	orders, err := orderService.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListAvailableOrders handles GET /api/v1/orders/available - lists the
// orders a mitra can see: unclaimed NEW orders plus their own active ones
func ListAvailableOrders(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	orders, err := orderService.ListForMitra(profile.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ClaimOrder handles POST /api/v1/orders/:id/claim - an accepted mitra
// takes an unclaimed NEW order
func ClaimOrder(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	order, err := orderService.Claim(c.Param("id"), profile.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignOrder handles POST /api/v1/orders/:id/assign - an administrator
// gives an order to an accepted mitra
func AssignOrder(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}
	if !requireProfileRole(c, profile, models.RoleAdmin) {
		return
	}

	var req AssignOrderRequest
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

	order, err := orderService.Assign(c.Param("id"), req.MitraID, req.Reassign)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AdvanceOrder handles POST /api/v1/orders/:id/advance - moves an order to
// the next lifecycle status
func AdvanceOrder(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}

	var req AdvanceOrderRequest
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

	order, err := orderService.Advance(c.Param("id"), models.OrderStatus(req.Status), profile.AccountID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - aborts an order
// (admin only)
func CancelOrder(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		return
	}
	if !requireProfileRole(c, profile, models.RoleAdmin) {
		return
	}

	order, err := orderService.Cancel(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
