package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amey40375/getshiny-mobile-care/events"
)

// StreamEvents handles GET /api/v1/events?topic=orders|chat - streams
// change notifications as server-sent events. Delivery is best-effort:
// consumers re-fetch the affected table on receipt instead of trusting
// the payload as the sole source of truth.
func StreamEvents(c *gin.Context) {
	topic := c.DefaultQuery("topic", events.TopicOrders)
	if topic != events.TopicOrders && topic != events.TopicChat {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown topic",
			},
		})
		return
	}

	client := eventHub.Subscribe(topic)
	defer eventHub.Unsubscribe(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-client.Send:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
