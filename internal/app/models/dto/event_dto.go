package dto

import (
	"time"
)

// CreateEventRequest schedules a club run. Coach or admin only.
type CreateEventRequest struct {
	Title           string  `json:"title" binding:"required,min=3"`
	Description     *string `json:"description"`
	Date            string  `json:"date" binding:"required"`
	Time            string  `json:"time" binding:"required"`
	Location        string  `json:"location" binding:"required,min=2"`
	LocationCoords  *Point  `json:"location_coords"`
	Distance        float64 `json:"distance" binding:"required,gt=0"`
	GroupName       string  `json:"group_name" binding:"required"`
	EventType       string  `json:"event_type" binding:"required"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,gt=0"`
}

// UpdateEventRequest edits an event; absent fields keep their value.
type UpdateEventRequest struct {
	Title           *string  `json:"title" binding:"omitempty,min=3"`
	Description     *string  `json:"description"`
	Date            *string  `json:"date"`
	Time            *string  `json:"time"`
	Location        *string  `json:"location"`
	LocationCoords  *Point   `json:"location_coords"`
	Distance        *float64 `json:"distance" binding:"omitempty,gt=0"`
	GroupName       *string  `json:"group_name"`
	EventType       *string  `json:"event_type"`
	MaxParticipants *int     `json:"max_participants" binding:"omitempty,gt=0"`
}

// EventResponse is an event with participation stats inlined.
type EventResponse struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description"`
	Date             string       `json:"date"`
	Time             string       `json:"time"`
	Location         string       `json:"location"`
	LocationCoords   *Point       `json:"location_coords"`
	Distance         float64      `json:"distance"`
	GroupName        string       `json:"group_name"`
	EventType        string       `json:"event_type"`
	MaxParticipants  *int         `json:"max_participants"`
	CreatedBy        string       `json:"created_by"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	ParticipantCount int          `json:"participant_count"`
	IsJoined         bool         `json:"is_joined"`
	Creator          *UserSummary `json:"creator"`
}

// EventDetailResponse adds the participant list.
type EventDetailResponse struct {
	EventResponse
	Participants []EventParticipantResponse `json:"participants"`
}

// EventParticipantResponse is a participant with join time.
type EventParticipantResponse struct {
	User     *UserSummary `json:"user"`
	JoinedAt time.Time    `json:"joined_at"`
}
