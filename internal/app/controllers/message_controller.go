package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// MessageController handles direct messages
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

var messageMessages = validation.Messages{
	"ParticipantID.required": "Le participant est requis",
	"Content.required":       "Le message ne peut pas être vide",
	"Content.min":            "Le message ne peut pas être vide",
}

// GetConversations lists the caller's conversations.
func (c *MessageController) GetConversations(ctx *gin.Context) {
	conversations, err := c.messageService.GetConversations(middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations))
}

// StartConversation opens (or returns) the conversation with another user.
func (c *MessageController) StartConversation(ctx *gin.Context) {
	var req dto.StartConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, messageMessages)))
		return
	}

	conversation, created, err := c.messageService.StartConversation(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.NewSuccessResponse(conversation))
}

// GetConversation returns one conversation with a page of messages.
func (c *MessageController) GetConversation(ctx *gin.Context) {
	var before *time.Time
	if raw := ctx.Query("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Paramètre before invalide"))
			return
		}
		before = &t
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	detail, err := c.messageService.GetConversation(ctx.Param("id"), middleware.CurrentUserID(ctx), before, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(detail))
}

// SendMessage posts a message into a conversation.
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, messageMessages)))
		return
	}

	message, err := c.messageService.SendMessage(ctx.Param("id"), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// MarkMessageRead marks one message read.
func (c *MessageController) MarkMessageRead(ctx *gin.Context) {
	if err := c.messageService.MarkMessageRead(ctx.Param("messageId"), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Message lu"))
}

// LeaveConversation removes the caller from a conversation.
func (c *MessageController) LeaveConversation(ctx *gin.Context) {
	if err := c.messageService.LeaveConversation(ctx.Param("id"), middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Conversation quittée"))
}
