package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotesync/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotesync/internal/ports"
)

// NotificationFeed lists the notifications that have not expired.
type NotificationFeed interface {
	Active() []ports.Notification
}

// NotificationHandler serves GET /api/v1/notifications.
type NotificationHandler struct {
	feed NotificationFeed
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(feed NotificationFeed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List returns active notifications, oldest first.
func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewNotificationResponses(h.feed.Active()))
}

// RegisterRoutes registers the notification route on rg.
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.List)
}
