package dto

import (
	"time"

	"github.com/rct/connect/internal/app/models"
)

// UserSummary is the denormalized author/sender/creator fragment inlined in
// responses.
type UserSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar,omitempty"`
}

// NewUserSummary builds a summary from a user record, or nil when the record
// was not found (dangling foreign key).
func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// UserResponse is the full profile without the password hash.
type UserResponse struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	Name            string      `json:"name"`
	Avatar          *string     `json:"avatar"`
	Role            models.Role `json:"role"`
	GroupName       *string     `json:"group_name"`
	Distance        float64     `json:"distance"`
	Runs            int         `json:"runs"`
	JoinedEvents    int         `json:"joined_events"`
	StravaConnected bool        `json:"strava_connected"`
	CreatedAt       time.Time   `json:"created_at"`
}

// NewUserResponse strips the credential fields from a user record.
func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		Avatar:          u.Avatar,
		Role:            u.Role,
		GroupName:       u.GroupName,
		Distance:        u.Distance,
		Runs:            u.Runs,
		JoinedEvents:    u.JoinedEvents,
		StravaConnected: u.StravaConnected,
		CreatedAt:       u.CreatedAt,
	}
}
