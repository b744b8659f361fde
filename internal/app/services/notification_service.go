package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
	"github.com/rct/connect/internal/pkg/ws"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	GetNotifications(userID string, unreadOnly bool) ([]models.Notification, *dto.NotificationListMeta, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
	DeleteNotification(id, userID string) error
	Broadcast(senderID string, req *dto.BroadcastRequest) (*dto.BroadcastResult, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	hub              *ws.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo *repositories.NotificationRepository, userRepo *repositories.UserRepository, hub *ws.Hub, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger.With().Str("service", "notifications").Logger(),
	}
}

// GetNotifications lists the caller's notifications, newest first, with the
// unread counter in the meta.
func (s *notificationServiceImpl) GetNotifications(userID string, unreadOnly bool) ([]models.Notification, *dto.NotificationListMeta, error) {
	notifications := s.notificationRepo.ListByUser(userID, unreadOnly)
	if notifications == nil {
		notifications = []models.Notification{}
	}
	meta := &dto.NotificationListMeta{UnreadCount: s.notificationRepo.UnreadCount(userID)}
	return notifications, meta, nil
}

// MarkRead marks one of the caller's notifications read.
func (s *notificationServiceImpl) MarkRead(id, userID string) error {
	if err := s.notificationRepo.MarkRead(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Notification non trouvée")
		}
		return err
	}
	return nil
}

// MarkAllRead marks every notification of the caller read.
func (s *notificationServiceImpl) MarkAllRead(userID string) error {
	return s.notificationRepo.MarkAllRead(userID)
}

// DeleteNotification removes one of the caller's notifications.
func (s *notificationServiceImpl) DeleteNotification(id, userID string) error {
	if err := s.notificationRepo.Delete(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NewNotFoundError("Notification non trouvée")
		}
		return err
	}
	return nil
}

// Broadcast fans a notification out to club members, excluding the sender.
// When a target group is given only its members are notified; absent, empty
// or "all" reaches everyone. All the records land in one write; connected
// recipients also get a socket push.
func (s *notificationServiceImpl) Broadcast(senderID string, req *dto.BroadcastRequest) (*dto.BroadcastResult, error) {
	var recipients []models.User
	if req.TargetGroup != nil && *req.TargetGroup != "" && *req.TargetGroup != "all" {
		recipients = s.userRepo.ListByGroup(*req.TargetGroup)
	} else {
		recipients = s.userRepo.ListAll()
	}

	now := time.Now()
	notifications := make([]models.Notification, 0, len(recipients))
	for _, u := range recipients {
		if u.ID == senderID {
			continue
		}
		notifications = append(notifications, models.Notification{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			Type:      req.Type,
			Title:     req.Title,
			Message:   req.Message,
			RelatedID: req.RelatedID,
			Read:      false,
			CreatedAt: now,
		})
	}

	if err := s.notificationRepo.CreateMany(notifications); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create notifications")
		return nil, err
	}

	for i := range notifications {
		n := notifications[i]
		s.hub.SendToUser(n.UserID, &ws.Event{Type: "notification", Payload: n})
	}

	s.logger.Info().
		Str("senderID", senderID).
		Str("type", req.Type).
		Int("count", len(notifications)).
		Msg("Notification broadcast")
	return &dto.BroadcastResult{Count: len(notifications)}, nil
}
