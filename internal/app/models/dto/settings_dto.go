package dto

// UpdateSettingsRequest partially updates the requester's preferences. At
// least one field must be present; the handler rejects empty updates.
type UpdateSettingsRequest struct {
	Theme                *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	Language             *string `json:"language" binding:"omitempty,oneof=fr en ar"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	EmailNotifications   *bool   `json:"email_notifications"`
}

// IsEmpty reports whether no field was provided.
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.Theme == nil && r.Language == nil && r.NotificationsEnabled == nil && r.EmailNotifications == nil
}

// UpdateThemeRequest switches the theme only.
type UpdateThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark system"`
}

// UpdateLanguageRequest switches the language only.
type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required,oneof=fr en ar"`
}

// UpdateNotificationPrefsRequest updates the notification flags.
type UpdateNotificationPrefsRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled"`
	EmailNotifications   *bool `json:"email_notifications"`
}

// IsEmpty reports whether no flag was provided.
func (r *UpdateNotificationPrefsRequest) IsEmpty() bool {
	return r.NotificationsEnabled == nil && r.EmailNotifications == nil
}
