package repositories

import (
	"errors"

	"github.com/rct/connect/internal/store"
)

// Scan-level errors. Services translate these into localized API errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrEventFull     = errors.New("event is full")
)

// Repositories bundles all repositories sharing the same store handle.
type Repositories struct {
	Users         *UserRepository
	Events        *EventRepository
	Posts         *PostRepository
	Stories       *StoryRepository
	Courses       *CourseRepository
	Notifications *NotificationRepository
	Conversations *ConversationRepository
	Settings      *SettingsRepository
}

// NewRepositories creates all repositories over one document store.
func NewRepositories(s *store.Store) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(s),
		Events:        NewEventRepository(s),
		Posts:         NewPostRepository(s),
		Stories:       NewStoryRepository(s),
		Courses:       NewCourseRepository(s),
		Notifications: NewNotificationRepository(s),
		Conversations: NewConversationRepository(s),
		Settings:      NewSettingsRepository(s),
	}
}
