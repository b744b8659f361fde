package models

import "time"

// Role determines what a club member is allowed to do.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleCoach  Role = "coach"
	RoleMember Role = "member"
)

// User is a club member account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Password        string    `json:"password"`
	Name            string    `json:"name"`
	Avatar          *string   `json:"avatar"`
	Role            Role      `json:"role"`
	GroupName       *string   `json:"group_name"`
	Distance        float64   `json:"distance"`
	Runs            int       `json:"runs"`
	JoinedEvents    int       `json:"joined_events"`
	StravaConnected bool      `json:"strava_connected"`
	StravaID        *string   `json:"strava_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
