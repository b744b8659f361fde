package services

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
	"github.com/rct/connect/internal/pkg/ws"
)

// MessageService defines the interface for direct-message operations
type MessageService interface {
	GetConversations(userID string) ([]dto.ConversationResponse, error)
	StartConversation(userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, bool, error)
	GetConversation(conversationID, userID string, before *time.Time, limit int) (*dto.ConversationDetailResponse, error)
	SendMessage(conversationID, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkMessageRead(messageID, userID string) error
	LeaveConversation(conversationID, userID string) error
}

// messageServiceImpl implements MessageService
type messageServiceImpl struct {
	conversationRepo *repositories.ConversationRepository
	userRepo         *repositories.UserRepository
	hub              *ws.Hub
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(conversationRepo *repositories.ConversationRepository, userRepo *repositories.UserRepository, hub *ws.Hub, logger zerolog.Logger) MessageService {
	return &messageServiceImpl{
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger.With().Str("service", "messages").Logger(),
	}
}

// GetConversations lists the caller's conversations, most recently active
// first.
func (s *messageServiceImpl) GetConversations(userID string) ([]dto.ConversationResponse, error) {
	ids := s.conversationRepo.IDsByUser(userID)

	out := make([]dto.ConversationResponse, 0, len(ids))
	for _, id := range ids {
		summary, err := s.conversationRepo.Summary(id, userID)
		if err != nil {
			continue
		}
		out = append(out, *s.assemble(summary, userID))
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].LastMessageTime, out[j].LastMessageTime
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})
	return out, nil
}

// StartConversation opens a conversation with another user, or returns the
// existing one: at most one conversation exists per unordered pair. The
// second return value reports whether a new conversation was created.
func (s *messageServiceImpl) StartConversation(userID string, req *dto.StartConversationRequest) (*dto.ConversationResponse, bool, error) {
	if req.ParticipantID == userID {
		return nil, false, apperrors.NewBadRequestError("Impossible de démarrer une conversation avec soi-même")
	}
	if _, err := s.userRepo.GetByID(req.ParticipantID); err != nil {
		return nil, false, apperrors.NewNotFoundError("Utilisateur non trouvé")
	}

	if existingID, ok := s.conversationRepo.FindDirect(userID, req.ParticipantID); ok {
		summary, err := s.conversationRepo.Summary(existingID, userID)
		if err != nil {
			return nil, false, err
		}
		return s.assemble(summary, userID), false, nil
	}

	now := time.Now()
	conversation := models.Conversation{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.conversationRepo.Create(conversation, []string{userID, req.ParticipantID}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create conversation")
		return nil, false, err
	}

	s.logger.Info().
		Str("conversationID", conversation.ID).
		Str("userID", userID).
		Str("participantID", req.ParticipantID).
		Msg("Conversation started")

	summary, err := s.conversationRepo.Summary(conversation.ID, userID)
	if err != nil {
		return nil, false, err
	}
	return s.assemble(summary, userID), true, nil
}

// GetConversation returns a conversation with a page of its messages, oldest
// first. Fetching the page also marks the incoming messages read; the write
// happens in the background.
func (s *messageServiceImpl) GetConversation(conversationID, userID string, before *time.Time, limit int) (*dto.ConversationDetailResponse, error) {
	if !s.conversationRepo.IsParticipant(conversationID, userID) {
		return nil, apperrors.NewNotFoundError("Conversation non trouvée")
	}
	summary, err := s.conversationRepo.Summary(conversationID, userID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Conversation non trouvée")
	}

	messages := s.conversationRepo.Messages(conversationID, before, limit)

	senderIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		senderIDs = append(senderIDs, m.SenderID)
	}
	senders := s.userRepo.GetMany(senderIDs)

	// Repo returns newest first for paging; the client renders oldest first.
	page := make([]dto.MessageResponse, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		var sender *dto.UserSummary
		if u, ok := senders[m.SenderID]; ok {
			sender = dto.NewUserSummary(&u)
		}
		page = append(page, dto.MessageResponse{Message: m, Sender: sender})
	}

	if err := s.conversationRepo.MarkIncomingRead(conversationID, userID); err != nil {
		s.logger.Error().Err(err).Str("conversationID", conversationID).Msg("Failed to mark messages read")
	}

	return &dto.ConversationDetailResponse{
		Conversation: s.assemble(summary, userID),
		Messages:     page,
	}, nil
}

// SendMessage posts a message and pushes it to the other participants'
// sockets.
func (s *messageServiceImpl) SendMessage(conversationID, userID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if !s.conversationRepo.IsParticipant(conversationID, userID) {
		return nil, apperrors.NewNotFoundError("Conversation non trouvée")
	}

	message := models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       userID,
		Content:        req.Content,
		Read:           false,
		CreatedAt:      time.Now(),
	}
	if err := s.conversationRepo.AddMessage(message); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Conversation non trouvée")
		}
		return nil, err
	}

	var sender *dto.UserSummary
	if u, err := s.userRepo.GetByID(userID); err == nil {
		sender = dto.NewUserSummary(u)
	}
	resp := &dto.MessageResponse{Message: message, Sender: sender}

	if summary, err := s.conversationRepo.Summary(conversationID, userID); err == nil {
		recipients := make([]string, 0, len(summary.ParticipantIDs))
		for _, id := range summary.ParticipantIDs {
			if id != userID {
				recipients = append(recipients, id)
			}
		}
		s.hub.SendToUsers(recipients, &ws.Event{Type: "message", Payload: resp})
	}
	return resp, nil
}

// MarkMessageRead marks one message read. Only a recipient may do so.
func (s *messageServiceImpl) MarkMessageRead(messageID, userID string) error {
	message, err := s.conversationRepo.GetMessage(messageID)
	if err != nil {
		return apperrors.NewNotFoundError("Message non trouvé")
	}
	if message.SenderID == userID || !s.conversationRepo.IsParticipant(message.ConversationID, userID) {
		return apperrors.NewForbiddenError("Non autorisé")
	}
	if err := s.conversationRepo.MarkMessageRead(messageID); err != nil {
		return apperrors.NewNotFoundError("Message non trouvé")
	}
	return nil
}

// LeaveConversation removes the caller from a conversation. The conversation
// disappears once its last participant leaves.
func (s *messageServiceImpl) LeaveConversation(conversationID, userID string) error {
	if err := s.conversationRepo.Leave(conversationID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Conversation non trouvée")
		}
		return err
	}
	s.logger.Info().Str("conversationID", conversationID).Str("userID", userID).Msg("User left conversation")
	return nil
}

func (s *messageServiceImpl) assemble(summary *repositories.ConversationSummary, viewerID string) *dto.ConversationResponse {
	users := s.userRepo.GetMany(summary.ParticipantIDs)

	participants := make([]dto.UserSummary, 0, len(summary.ParticipantIDs))
	for _, id := range summary.ParticipantIDs {
		if u, ok := users[id]; ok {
			participants = append(participants, *dto.NewUserSummary(&u))
		}
	}

	resp := &dto.ConversationResponse{
		ID:           summary.ID,
		Participants: participants,
		UnreadCount:  summary.UnreadCount,
	}
	if summary.LastMessage != nil {
		content := summary.LastMessage.Content
		at := summary.LastMessage.CreatedAt
		resp.LastMessage = &content
		resp.LastMessageTime = &at
	}
	return resp
}
