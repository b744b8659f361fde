package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
)

// PostService defines the interface for feed operations
type PostService interface {
	GetAllPosts(authorID string, limit, offset int, viewerID string) ([]dto.PostResponse, error)
	GetPostByID(id, viewerID string) (*dto.PostResponse, error)
	CreatePost(userID string, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	UpdatePost(id, userID string, role models.Role, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(id, userID string, role models.Role) error
	ToggleLike(postID, userID string) (*dto.LikeResult, error)
	GetComments(postID string) ([]dto.CommentResponse, error)
	AddComment(postID, userID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(postID, commentID, userID string, role models.Role) error
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo *repositories.PostRepository
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo *repositories.PostRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
		logger:   logger.With().Str("service", "posts").Logger(),
	}
}

// GetAllPosts lists posts newest first, optionally filtered by author.
func (s *postServiceImpl) GetAllPosts(authorID string, limit, offset int, viewerID string) ([]dto.PostResponse, error) {
	posts := s.postRepo.List(authorID, limit, offset)

	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *s.assemble(&posts[i], viewerID, false))
	}
	return out, nil
}

// GetPostByID returns one post with its comments inlined.
func (s *postServiceImpl) GetPostByID(id, viewerID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Publication non trouvée")
	}
	return s.assemble(post, viewerID, true), nil
}

// CreatePost publishes a post authored by the caller.
func (s *postServiceImpl) CreatePost(userID string, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	now := time.Now()
	post := models.Post{
		ID:        uuid.New().String(),
		AuthorID:  userID,
		Content:   req.Content,
		Image:     req.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(post); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create post")
		return nil, err
	}

	s.logger.Info().Str("postID", post.ID).Str("userID", userID).Msg("Post created")
	return s.assemble(&post, userID, false), nil
}

// UpdatePost edits a post. Only the author or an admin may do so.
func (s *postServiceImpl) UpdatePost(id, userID string, role models.Role, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Publication non trouvée")
	}
	if post.AuthorID != userID && role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Non autorisé à modifier cette publication")
	}

	updated, err := s.postRepo.Update(id, func(p *models.Post) {
		if req.Content != nil {
			p.Content = *req.Content
		}
		if req.Image != nil {
			p.Image = req.Image
		}
	})
	if err != nil {
		return nil, apperrors.NewNotFoundError("Publication non trouvée")
	}
	return s.assemble(updated, userID, false), nil
}

// DeletePost removes a post with its likes and comments.
func (s *postServiceImpl) DeletePost(id, userID string, role models.Role) error {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return apperrors.NewNotFoundError("Publication non trouvée")
	}
	if post.AuthorID != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Non autorisé à supprimer cette publication")
	}

	if err := s.postRepo.Delete(id); err != nil {
		return apperrors.NewNotFoundError("Publication non trouvée")
	}
	s.logger.Info().Str("postID", id).Msg("Post deleted")
	return nil
}

// ToggleLike flips the caller's like on a post and reports the new count.
func (s *postServiceImpl) ToggleLike(postID, userID string) (*dto.LikeResult, error) {
	liked, count, err := s.postRepo.ToggleLike(postID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Publication non trouvée")
		}
		return nil, err
	}
	return &dto.LikeResult{Liked: liked, LikeCount: count}, nil
}

// GetComments lists a post's comments oldest first.
func (s *postServiceImpl) GetComments(postID string) ([]dto.CommentResponse, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, apperrors.NewNotFoundError("Publication non trouvée")
	}
	return s.assembleComments(postID), nil
}

// AddComment appends a comment to a post.
func (s *postServiceImpl) AddComment(postID, userID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	comment := models.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  userID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.AddComment(comment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Publication non trouvée")
		}
		return nil, err
	}

	var author *dto.UserSummary
	if u, err := s.userRepo.GetByID(userID); err == nil {
		author = dto.NewUserSummary(u)
	}
	return &dto.CommentResponse{Comment: comment, Author: author}, nil
}

// DeleteComment removes a comment. The comment's author, the post's author
// and admins may do so.
func (s *postServiceImpl) DeleteComment(postID, commentID, userID string, role models.Role) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return apperrors.NewNotFoundError("Publication non trouvée")
	}
	comment, err := s.postRepo.GetComment(postID, commentID)
	if err != nil {
		return apperrors.NewNotFoundError("Commentaire non trouvé")
	}
	if comment.AuthorID != userID && post.AuthorID != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Non autorisé à supprimer ce commentaire")
	}

	if err := s.postRepo.DeleteComment(postID, commentID); err != nil {
		return apperrors.NewNotFoundError("Commentaire non trouvé")
	}
	return nil
}

func (s *postServiceImpl) assemble(post *models.Post, viewerID string, withComments bool) *dto.PostResponse {
	likes := s.postRepo.Likes(post.ID)
	comments := s.postRepo.Comments(post.ID)

	var author *dto.UserSummary
	if u, err := s.userRepo.GetByID(post.AuthorID); err == nil {
		author = dto.NewUserSummary(u)
	}

	liked := false
	for _, l := range likes {
		if l.UserID == viewerID {
			liked = true
			break
		}
	}

	resp := &dto.PostResponse{
		Post:         *post,
		Author:       author,
		LikeCount:    len(likes),
		CommentCount: len(comments),
		IsLiked:      liked,
	}
	if withComments {
		resp.Comments = s.assembleComments(post.ID)
	}
	return resp
}

func (s *postServiceImpl) assembleComments(postID string) []dto.CommentResponse {
	comments := s.postRepo.Comments(postID)

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	users := s.userRepo.GetMany(ids)

	out := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		var author *dto.UserSummary
		if u, ok := users[c.AuthorID]; ok {
			author = dto.NewUserSummary(&u)
		}
		out = append(out, dto.CommentResponse{Comment: c, Author: author})
	}
	return out
}
