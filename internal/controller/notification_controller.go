package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"farm-advisory/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationController handles the notification routes beyond plain CRUD
type NotificationController struct {
	notifications *service.NotificationCollection
	logger        *slog.Logger
}

// NewNotificationController creates a new notification controller
func NewNotificationController(notifications *service.NotificationCollection, logger *slog.Logger) *NotificationController {
	return &NotificationController{
		notifications: notifications,
		logger:        logger.With("controller", "notification"),
	}
}

// List handles GET /v1/notifications
// Query parameters:
//   - unread (optional): when true, only notifications not yet read
func (c *NotificationController) List(ctx *gin.Context) {
	unreadStr := ctx.DefaultQuery("unread", "false")
	unread, err := strconv.ParseBool(unreadStr)
	if err != nil {
		c.logger.Warn("invalid unread flag", "unread", unreadStr)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid unread",
			"message": "unread must be true or false",
		})
		return
	}

	if unread {
		ctx.JSON(http.StatusOK, c.notifications.GetUnread())
		return
	}
	ctx.JSON(http.StatusOK, c.notifications.GetAll())
}

// MarkAsRead handles POST /v1/notifications/:id/read
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id := ctx.Param("id")
	n, ok := c.notifications.MarkAsRead(id)
	if !ok {
		respondNotFound(ctx, c.logger, "notification", id)
		return
	}
	ctx.JSON(http.StatusOK, n)
}
