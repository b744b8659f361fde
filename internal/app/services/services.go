package services

import (
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/auth"
	"github.com/rct/connect/internal/pkg/ws"
)

// Services holds all service implementations
type Services struct {
	Auth          AuthService
	Events        EventService
	Posts         PostService
	Stories       StoryService
	Courses       CourseService
	Messages      MessageService
	Notifications NotificationService
	Settings      SettingsService
}

// NewServices wires every service with its repositories.
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, hub *ws.Hub, logger zerolog.Logger) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users, jwtService, logger),
		Events:        NewEventService(repos.Events, repos.Users, logger),
		Posts:         NewPostService(repos.Posts, repos.Users, logger),
		Stories:       NewStoryService(repos.Stories, repos.Users, logger),
		Courses:       NewCourseService(repos.Courses, repos.Users, logger),
		Messages:      NewMessageService(repos.Conversations, repos.Users, hub, logger),
		Notifications: NewNotificationService(repos.Notifications, repos.Users, hub, logger),
		Settings:      NewSettingsService(repos.Settings, logger),
	}
}
