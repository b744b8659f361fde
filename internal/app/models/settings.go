package models

// Themes
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Languages
const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

// UserSettings holds per-user preferences, created lazily on first access.
type UserSettings struct {
	UserID               string `json:"user_id"`
	Theme                string `json:"theme"`
	Language             string `json:"language"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	EmailNotifications   bool   `json:"email_notifications"`
}

// DefaultSettings returns the settings a user starts with.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:               userID,
		Theme:                ThemeSystem,
		Language:             LanguageFrench,
		NotificationsEnabled: true,
		EmailNotifications:   true,
	}
}
