package services

import (
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
)

// SettingsService defines the interface for preference operations
type SettingsService interface {
	GetSettings(userID string) (*models.UserSettings, error)
	UpdateSettings(userID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error)
	UpdateTheme(userID string, req *dto.UpdateThemeRequest) (*models.UserSettings, error)
	UpdateLanguage(userID string, req *dto.UpdateLanguageRequest) (*models.UserSettings, error)
	UpdateNotificationPrefs(userID string, req *dto.UpdateNotificationPrefsRequest) (*models.UserSettings, error)
}

// settingsServiceImpl implements SettingsService
type settingsServiceImpl struct {
	settingsRepo *repositories.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo *repositories.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsServiceImpl{
		settingsRepo: settingsRepo,
		logger:       logger.With().Str("service", "settings").Logger(),
	}
}

// GetSettings returns the caller's preferences, creating the defaults on
// first access.
func (s *settingsServiceImpl) GetSettings(userID string) (*models.UserSettings, error) {
	return s.settingsRepo.GetOrCreate(userID)
}

// UpdateSettings applies a partial update to the caller's preferences.
func (s *settingsServiceImpl) UpdateSettings(userID string, req *dto.UpdateSettingsRequest) (*models.UserSettings, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("Aucun paramètre à mettre à jour")
	}
	return s.settingsRepo.Update(userID, func(settings *models.UserSettings) {
		if req.Theme != nil {
			settings.Theme = *req.Theme
		}
		if req.Language != nil {
			settings.Language = *req.Language
		}
		if req.NotificationsEnabled != nil {
			settings.NotificationsEnabled = *req.NotificationsEnabled
		}
		if req.EmailNotifications != nil {
			settings.EmailNotifications = *req.EmailNotifications
		}
	})
}

// UpdateTheme switches the theme only.
func (s *settingsServiceImpl) UpdateTheme(userID string, req *dto.UpdateThemeRequest) (*models.UserSettings, error) {
	return s.settingsRepo.Update(userID, func(settings *models.UserSettings) {
		settings.Theme = req.Theme
	})
}

// UpdateLanguage switches the language only.
func (s *settingsServiceImpl) UpdateLanguage(userID string, req *dto.UpdateLanguageRequest) (*models.UserSettings, error) {
	return s.settingsRepo.Update(userID, func(settings *models.UserSettings) {
		settings.Language = req.Language
	})
}

// UpdateNotificationPrefs updates the notification flags only.
func (s *settingsServiceImpl) UpdateNotificationPrefs(userID string, req *dto.UpdateNotificationPrefsRequest) (*models.UserSettings, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewBadRequestError("Aucun paramètre à mettre à jour")
	}
	return s.settingsRepo.Update(userID, func(settings *models.UserSettings) {
		if req.NotificationsEnabled != nil {
			settings.NotificationsEnabled = *req.NotificationsEnabled
		}
		if req.EmailNotifications != nil {
			settings.EmailNotifications = *req.EmailNotifications
		}
	})
}
