package dto

import (
	"github.com/rct/connect/internal/app/models"
)

// CreateStoryRequest publishes a story, visible for 24 hours.
type CreateStoryRequest struct {
	Image   string  `json:"image" binding:"required,url"`
	Caption *string `json:"caption" binding:"omitempty,max=200"`
}

// StoryItem is a story with the requester's viewed flag.
type StoryItem struct {
	models.Story
	Viewed bool `json:"viewed"`
}

// StoryGroupResponse groups a user's active stories for the tray view.
type StoryGroupResponse struct {
	User        *UserSummary `json:"user"`
	Stories     []StoryItem  `json:"stories"`
	HasUnviewed bool         `json:"hasUnviewed"`
}

// StoryDetailResponse is a single story with owner and view stats.
type StoryDetailResponse struct {
	models.Story
	User      *UserSummary `json:"user"`
	Viewed    bool         `json:"viewed"`
	ViewCount int          `json:"view_count"`
}
