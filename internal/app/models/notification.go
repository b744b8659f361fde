package models

import "time"

// Notification types
const (
	NotificationTypeEvent        = "event"
	NotificationTypeAnnouncement = "announcement"
	NotificationTypeReminder     = "reminder"
	NotificationTypeSystem       = "system"
)

// Notification is a fire-and-forget message to a user. RelatedID loosely
// points at the entity that caused it, if any.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	RelatedID *string   `json:"related_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
