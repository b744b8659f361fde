package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/validation"
)

// PostController handles the feed
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

var postMessages = validation.Messages{
	"Content.required": "Le contenu est requis",
	"Content.min":      "Le contenu ne peut pas être vide",
	"Image.url":        "L'image doit être une URL valide",
}

// GetAllPosts lists posts newest first, filterable by author, with
// limit/offset paging.
func (c *PostController) GetAllPosts(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	posts, err := c.postService.GetAllPosts(ctx.Query("authorId"), limit, offset, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPostByID returns one post with its comments.
func (c *PostController) GetPostByID(ctx *gin.Context) {
	post, err := c.postService.GetPostByID(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// CreatePost publishes a post.
func (c *PostController) CreatePost(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, postMessages)))
		return
	}

	post, err := c.postService.CreatePost(middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// UpdatePost edits a post.
func (c *PostController) UpdatePost(ctx *gin.Context) {
	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, postMessages)))
		return
	}

	post, err := c.postService.UpdatePost(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost removes a post with its likes and comments.
func (c *PostController) DeletePost(ctx *gin.Context) {
	if err := c.postService.DeletePost(ctx.Param("id"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Publication supprimée"))
}

// ToggleLike flips the caller's like.
func (c *PostController) ToggleLike(ctx *gin.Context) {
	result, err := c.postService.ToggleLike(ctx.Param("id"), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetComments lists a post's comments.
func (c *PostController) GetComments(ctx *gin.Context) {
	comments, err := c.postService.GetComments(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// AddComment appends a comment to a post.
func (c *PostController) AddComment(ctx *gin.Context) {
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(validation.FirstError(err, postMessages)))
		return
	}

	comment, err := c.postService.AddComment(ctx.Param("id"), middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// DeleteComment removes a comment.
func (c *PostController) DeleteComment(ctx *gin.Context) {
	err := c.postService.DeleteComment(ctx.Param("id"), ctx.Param("commentId"), middleware.CurrentUserID(ctx), middleware.CurrentRole(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Commentaire supprimé"))
}
