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
)

// EventService defines the interface for event operations
type EventService interface {
	GetAllEvents(filter repositories.EventFilter, viewerID string) ([]dto.EventResponse, error)
	GetEventByID(id, viewerID string) (*dto.EventDetailResponse, error)
	CreateEvent(userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(id, userID string, role models.Role, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(id, userID string, role models.Role) error
	JoinEvent(id, userID string) (*dto.EventResponse, error)
	LeaveEvent(id, userID string) (*dto.EventResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo *repositories.EventRepository
	userRepo  *repositories.UserRepository
	logger    zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo *repositories.EventRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "events").Logger(),
	}
}

// GetAllEvents lists events matching the filter, soonest first.
func (s *eventServiceImpl) GetAllEvents(filter repositories.EventFilter, viewerID string) ([]dto.EventResponse, error) {
	events := s.eventRepo.List(filter)

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *s.assemble(&events[i], viewerID))
	}
	return out, nil
}

// GetEventByID returns one event with its participant list.
func (s *eventServiceImpl) GetEventByID(id, viewerID string) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	}

	participants := s.eventRepo.Participants(id)
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	users := s.userRepo.GetMany(ids)

	detail := &dto.EventDetailResponse{
		EventResponse: *s.assemble(event, viewerID),
		Participants:  make([]dto.EventParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		var summary *dto.UserSummary
		if u, ok := users[p.UserID]; ok {
			summary = dto.NewUserSummary(&u)
		}
		detail.Participants = append(detail.Participants, dto.EventParticipantResponse{
			User:     summary,
			JoinedAt: p.JoinedAt,
		})
	}
	return detail, nil
}

// CreateEvent schedules a new event owned by the caller.
func (s *eventServiceImpl) CreateEvent(userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	now := time.Now()
	event := models.Event{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		LocationCoords:  encodePoint(req.LocationCoords),
		Distance:        req.Distance,
		GroupName:       req.GroupName,
		EventType:       req.EventType,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.eventRepo.Create(event); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create event")
		return nil, err
	}

	s.logger.Info().Str("eventID", event.ID).Str("userID", userID).Msg("Event created")
	return s.assemble(&event, userID), nil
}

// UpdateEvent edits an event. Only the creator or an admin may do so.
func (s *eventServiceImpl) UpdateEvent(id, userID string, role models.Role, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	}
	if event.CreatedBy != userID && role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Non autorisé à modifier cet événement")
	}

	updated, err := s.eventRepo.Update(id, func(e *models.Event) {
		if req.Title != nil {
			e.Title = *req.Title
		}
		if req.Description != nil {
			e.Description = req.Description
		}
		if req.Date != nil {
			e.Date = *req.Date
		}
		if req.Time != nil {
			e.Time = *req.Time
		}
		if req.Location != nil {
			e.Location = *req.Location
		}
		if req.LocationCoords != nil {
			e.LocationCoords = encodePoint(req.LocationCoords)
		}
		if req.Distance != nil {
			e.Distance = *req.Distance
		}
		if req.GroupName != nil {
			e.GroupName = *req.GroupName
		}
		if req.EventType != nil {
			e.EventType = *req.EventType
		}
		if req.MaxParticipants != nil {
			e.MaxParticipants = req.MaxParticipants
		}
	})
	if err != nil {
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	}
	return s.assemble(updated, userID), nil
}

// DeleteEvent removes an event and its participations.
func (s *eventServiceImpl) DeleteEvent(id, userID string, role models.Role) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return apperrors.NewNotFoundError("Événement non trouvé")
	}
	if event.CreatedBy != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Non autorisé à supprimer cet événement")
	}

	if err := s.eventRepo.Delete(id); err != nil {
		return apperrors.NewNotFoundError("Événement non trouvé")
	}
	s.logger.Info().Str("eventID", id).Msg("Event deleted")
	return nil
}

// JoinEvent registers the caller as a participant.
func (s *eventServiceImpl) JoinEvent(id, userID string) (*dto.EventResponse, error) {
	err := s.eventRepo.Join(id, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	case errors.Is(err, repositories.ErrAlreadyExists):
		return nil, apperrors.NewConflictError("Vous êtes déjà inscrit à cet événement")
	case errors.Is(err, repositories.ErrEventFull):
		return nil, apperrors.NewBadRequestError("Événement complet")
	case err != nil:
		return nil, err
	}

	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	}
	s.logger.Info().Str("eventID", id).Str("userID", userID).Msg("User joined event")
	return s.assemble(event, userID), nil
}

// LeaveEvent removes the caller's participation.
func (s *eventServiceImpl) LeaveEvent(id, userID string) (*dto.EventResponse, error) {
	if err := s.eventRepo.Leave(id, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Inscription non trouvée")
		}
		return nil, err
	}

	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Événement non trouvé")
	}
	return s.assemble(event, userID), nil
}

func (s *eventServiceImpl) assemble(event *models.Event, viewerID string) *dto.EventResponse {
	participants := s.eventRepo.Participants(event.ID)

	var creator *dto.UserSummary
	if u, err := s.userRepo.GetByID(event.CreatedBy); err == nil {
		creator = dto.NewUserSummary(u)
	}

	joined := false
	if viewerID != "" {
		joined = s.eventRepo.IsJoined(event.ID, viewerID)
	}

	return &dto.EventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		Date:             event.Date,
		Time:             event.Time,
		Location:         event.Location,
		LocationCoords:   decodePointRef(event.LocationCoords),
		Distance:         event.Distance,
		GroupName:        event.GroupName,
		EventType:        event.EventType,
		MaxParticipants:  event.MaxParticipants,
		CreatedBy:        event.CreatedBy,
		CreatedAt:        event.CreatedAt,
		UpdatedAt:        event.UpdatedAt,
		ParticipantCount: len(participants),
		IsJoined:         joined,
		Creator:          creator,
	}
}
