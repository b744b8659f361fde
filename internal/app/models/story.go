package models

import "time"

// Story is a time-bounded image publication. It stops being visible once
// ExpiresAt passes; expired rows are filtered on read, never swept.
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Image     string    `json:"image"`
	Caption   *string   `json:"caption"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the story is no longer visible at the given instant.
func (s *Story) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// StoryView is the (story, user) join record.
type StoryView struct {
	StoryID  string    `json:"story_id"`
	UserID   string    `json:"user_id"`
	ViewedAt time.Time `json:"viewed_at"`
}
