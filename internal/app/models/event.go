package models

import "time"

// Event is a scheduled club run or training session.
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Location        string    `json:"location"`
	LocationCoords  *string   `json:"location_coords"`
	Distance        float64   `json:"distance"`
	GroupName       string    `json:"group_name"`
	EventType       string    `json:"event_type"`
	MaxParticipants *int      `json:"max_participants"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EventParticipant is the (event, user) join record.
type EventParticipant struct {
	EventID  string    `json:"event_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
