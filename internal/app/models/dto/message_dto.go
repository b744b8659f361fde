package dto

import (
	"time"

	"github.com/rct/connect/internal/app/models"
)

// StartConversationRequest opens (or finds) a direct conversation with
// another user.
type StartConversationRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
}

// SendMessageRequest posts a message into a conversation.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// ConversationResponse is a conversation with its participants and last
// message inlined.
type ConversationResponse struct {
	ID              string        `json:"id"`
	Participants    []UserSummary `json:"participants"`
	LastMessage     *string       `json:"last_message"`
	LastMessageTime *time.Time    `json:"last_message_time"`
	UnreadCount     int           `json:"unread_count"`
}

// MessageResponse is a message with its sender inlined.
type MessageResponse struct {
	models.Message
	Sender *UserSummary `json:"sender"`
}

// ConversationDetailResponse pairs a conversation header with a page of its
// messages, oldest first.
type ConversationDetailResponse struct {
	Conversation *ConversationResponse `json:"conversation"`
	Messages     []MessageResponse     `json:"messages"`
}
