package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// StoryController handles stories
type StoryController struct {
	storyService services.StoryService
}

// NewStoryController creates a new StoryController
func NewStoryController(storyService services.StoryService) *StoryController {
	return &StoryController{storyService: storyService}
}

var storyMessages = validation.Messages{
	"Image.required": "L'image est requise",
	"Image.url":      "L'image doit être une URL valide",
	"Caption.max":    "La légende ne peut pas dépasser 200 caractères",
}

// GetActiveStories returns the story tray, grouped per author.
func (c *StoryController) GetActiveStories(ctx *gin.Context) {
	groups, err := c.storyService.GetActiveStories(middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(groups))
}

// GetStoryByID returns one story, 410 once it has expired.
func (c *StoryController) GetStoryByID(ctx *gin.Context) {
	story, err := c.storyService.GetStoryByID(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(story))
}

// CreateStory publishes a story.
func (c *StoryController) CreateStory(ctx *gin.Context) {
	var req dto.CreateStoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, storyMessages)))
		return
	}

	story, err := c.storyService.CreateStory(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(story))
}

// DeleteStory removes a story.
func (c *StoryController) DeleteStory(ctx *gin.Context) {
	if err := c.storyService.DeleteStory(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Story supprimée"))
}

// ViewStory records the caller's view and returns the story.
func (c *StoryController) ViewStory(ctx *gin.Context) {
	story, recorded, err := c.storyService.ViewStory(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewSuccessResponse(story)
	if recorded {
		resp.Message = "Story marquée comme vue"
	} else {
		resp.Message = "Déjà vue"
	}
	ctx.JSON(http.StatusOK, resp)
}
