package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// EventController handles event operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

var eventMessages = validation.Messages{
	"Title.required":       "Le titre est requis",
	"Title.min":            "Le titre doit contenir au moins 3 caractères",
	"Date.required":        "La date est requise",
	"Time.required":        "L'heure est requise",
	"Location.required":    "Le lieu est requis",
	"Location.min":         "Le lieu doit contenir au moins 2 caractères",
	"Distance.required":    "La distance est requise",
	"Distance.gt":          "La distance doit être positive",
	"GroupName.required":   "Le groupe est requis",
	"EventType.required":   "Le type d'événement est requis",
	"MaxParticipants.gt":   "Le nombre de participants doit être positif",
}

// GetAllEvents lists events, filterable by group, type and upcoming.
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	filter := repositories.EventFilter{
		Group:     ctx.Query("group"),
		EventType: ctx.Query("event_type"),
		Upcoming:  ctx.Query("upcoming") == "true",
	}

	events, err := c.eventService.GetAllEvents(filter, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventByID returns one event with its participants.
func (c *EventController) GetEventByID(ctx *gin.Context) {
	event, err := c.eventService.GetEventByID(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CreateEvent schedules an event. Coach or admin only, enforced by the
// route group.
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, eventMessages)))
		return
	}

	event, err := c.eventService.CreateEvent(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpdateEvent edits an event.
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, eventMessages)))
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent removes an event.
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	if err := c.eventService.DeleteEvent(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Événement supprimé"))
}

// JoinEvent registers the caller as a participant.
func (c *EventController) JoinEvent(ctx *gin.Context) {
	event, err := c.eventService.JoinEvent(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// LeaveEvent removes the caller's participation.
func (c *EventController) LeaveEvent(ctx *gin.Context) {
	event, err := c.eventService.LeaveEvent(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}
