package dto

import (
	"github.com/rct/connect/internal/app/models"
)

// CreatePostRequest publishes a feed post.
type CreatePostRequest struct {
	Content string  `json:"content" binding:"required,min=1"`
	Image   *string `json:"image" binding:"omitempty,url"`
}

// UpdatePostRequest edits a post; absent fields keep their value.
type UpdatePostRequest struct {
	Content *string `json:"content" binding:"omitempty,min=1"`
	Image   *string `json:"image" binding:"omitempty,url"`
}

// CreateCommentRequest adds a comment to a post.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// CommentResponse is a comment with its author inlined.
type CommentResponse struct {
	models.Comment
	Author *UserSummary `json:"author"`
}

// PostResponse is a post with author and engagement stats inlined. Comments
// are only populated on the detail endpoint.
type PostResponse struct {
	models.Post
	Author       *UserSummary      `json:"author"`
	LikeCount    int               `json:"like_count"`
	CommentCount int               `json:"comment_count"`
	IsLiked      bool              `json:"is_liked"`
	Comments     []CommentResponse `json:"comments,omitempty"`
}

// LikeResult reports the toggle outcome and the recomputed count.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
