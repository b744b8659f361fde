package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// SettingsController handles user preferences
type SettingsController struct {
	settingsService services.SettingsService
}

// NewSettingsController creates a new SettingsController
func NewSettingsController(settingsService services.SettingsService) *SettingsController {
	return &SettingsController{settingsService: settingsService}
}

var settingsMessages = validation.Messages{
	"Theme.required":    "Le thème est requis",
	"Theme.oneof":       "Thème invalide",
	"Language.required": "La langue est requise",
	"Language.oneof":    "Langue invalide",
}

// GetSettings returns the caller's preferences, with defaults created on
// first access.
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	settings, err := c.settingsService.GetSettings(middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// UpdateSettings applies a partial preference update.
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, settingsMessages)))
		return
	}

	settings, err := c.settingsService.UpdateSettings(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// UpdateTheme switches the theme only.
func (c *SettingsController) UpdateTheme(ctx *gin.Context) {
	var req dto.UpdateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, settingsMessages)))
		return
	}

	settings, err := c.settingsService.UpdateTheme(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// UpdateLanguage switches the language only.
func (c *SettingsController) UpdateLanguage(ctx *gin.Context) {
	var req dto.UpdateLanguageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, settingsMessages)))
		return
	}

	settings, err := c.settingsService.UpdateLanguage(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}

// UpdateNotificationPrefs updates the notification flags only.
func (c *SettingsController) UpdateNotificationPrefs(ctx *gin.Context) {
	var req dto.UpdateNotificationPrefsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, settingsMessages)))
		return
	}

	settings, err := c.settingsService.UpdateNotificationPrefs(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(settings))
}
