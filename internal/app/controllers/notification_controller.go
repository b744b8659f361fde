package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// NotificationController handles notifications
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

var broadcastMessages = validation.Messages{
	"Type.required":    "Le type est requis",
	"Type.oneof":       "Type de notification invalide",
	"Title.required":   "Le titre est requis",
	"Message.required": "Le message est requis",
}

// GetNotifications lists the caller's notifications with the unread counter
// in the meta.
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	unreadOnly := ctx.Query("unreadOnly") == "true"

	notifications, meta, err := c.notificationService.GetNotifications(middleware.CurrentUserID(ctx), unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(notifications, meta))
}

// MarkRead marks one notification read.
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	if err := c.notificationService.MarkRead(ctx.Param("id"), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification lue"))
}

// MarkAllRead marks every notification of the caller read.
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	if err := c.notificationService.MarkAllRead(middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notifications lues"))
}

// DeleteNotification removes one notification.
func (c *NotificationController) DeleteNotification(ctx *gin.Context) {
	if err := c.notificationService.DeleteNotification(ctx.Param("id"), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Notification supprimée"))
}

// Broadcast fans a notification out to members. Coach or admin only,
// enforced by the route group.
func (c *NotificationController) Broadcast(ctx *gin.Context) {
	var req dto.BroadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, broadcastMessages)))
		return
	}

	result, err := c.notificationService.Broadcast(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}
