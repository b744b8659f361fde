package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
)

// StoryTTL is how long a story stays visible after publication.
const StoryTTL = 24 * time.Hour

// StoryService defines the interface for story operations
type StoryService interface {
	GetActiveStories(viewerID string) ([]dto.StoryGroupResponse, error)
	GetStoryByID(id, viewerID string) (*dto.StoryDetailResponse, error)
	CreateStory(userID string, req *dto.CreateStoryRequest) (*models.Story, error)
	DeleteStory(id, userID string, role models.Role) error
	ViewStory(id, viewerID string) (*dto.StoryDetailResponse, bool, error)
}

// storyServiceImpl implements StoryService
type storyServiceImpl struct {
	storyRepo *repositories.StoryRepository
	userRepo  *repositories.UserRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStoryService creates a new StoryService
func NewStoryService(storyRepo *repositories.StoryRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) StoryService {
	return &storyServiceImpl{
		storyRepo: storyRepo,
		userRepo:  userRepo,
		logger:    logger.With().Str("service", "stories").Logger(),
		now:       time.Now,
	}
}

// GetActiveStories returns unexpired stories grouped per author for the tray
// view, the viewer's own group first, then authors with unviewed stories.
func (s *storyServiceImpl) GetActiveStories(viewerID string) ([]dto.StoryGroupResponse, error) {
	stories := s.storyRepo.ListActive(s.now())
	viewed := map[string]bool{}
	if viewerID != "" {
		viewed = s.storyRepo.ViewedBy(viewerID)
	}

	byUser := make(map[string][]dto.StoryItem)
	order := []string{}
	for _, story := range stories {
		if _, seen := byUser[story.UserID]; !seen {
			order = append(order, story.UserID)
		}
		byUser[story.UserID] = append(byUser[story.UserID], dto.StoryItem{
			Story:  story,
			Viewed: viewed[story.ID],
		})
	}

	users := s.userRepo.GetMany(order)
	groups := make([]dto.StoryGroupResponse, 0, len(order))
	for _, userID := range order {
		items := byUser[userID]
		hasUnviewed := false
		for _, it := range items {
			if !it.Viewed {
				hasUnviewed = true
				break
			}
		}
		var owner *dto.UserSummary
		if u, ok := users[userID]; ok {
			owner = dto.NewUserSummary(&u)
		}
		groups = append(groups, dto.StoryGroupResponse{
			User:        owner,
			Stories:     items,
			HasUnviewed: hasUnviewed,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		iOwn := gi.User != nil && gi.User.ID == viewerID
		jOwn := gj.User != nil && gj.User.ID == viewerID
		if iOwn != jOwn {
			return iOwn
		}
		if gi.HasUnviewed != gj.HasUnviewed {
			return gi.HasUnviewed
		}
		return false
	})
	return groups, nil
}

// GetStoryByID returns one story. Expired stories answer Gone, not NotFound:
// the client treats the two cases differently.
func (s *storyServiceImpl) GetStoryByID(id, viewerID string) (*dto.StoryDetailResponse, error) {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Story non trouvée")
	}
	if story.Expired(s.now()) {
		return nil, apperrors.NewGoneError("Story expirée")
	}
	return s.assemble(story, viewerID), nil
}

// CreateStory publishes a story expiring after the TTL.
func (s *storyServiceImpl) CreateStory(userID string, req *dto.CreateStoryRequest) (*models.Story, error) {
	now := s.now()
	story := models.Story{
		ID:        uuid.New().String(),
		UserID:    userID,
		Image:     req.Image,
		Caption:   req.Caption,
		ExpiresAt: now.Add(StoryTTL),
		CreatedAt: now,
	}

	if err := s.storyRepo.Create(story); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create story")
		return nil, err
	}

	s.logger.Info().Str("storyID", story.ID).Str("userID", userID).Msg("Story created")
	return &story, nil
}

// DeleteStory removes a story and its views. Owner or admin only.
func (s *storyServiceImpl) DeleteStory(id, userID string, role models.Role) error {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return apperrors.NewNotFoundError("Story non trouvée")
	}
	if story.UserID != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Non autorisé à supprimer cette story")
	}

	if err := s.storyRepo.Delete(id); err != nil {
		return apperrors.NewNotFoundError("Story non trouvée")
	}
	return nil
}

// ViewStory records that the viewer saw the story and returns it. Recording
// is idempotent per (story, viewer); the owner's own view is not recorded.
// The second return value reports whether a new view was recorded.
func (s *storyServiceImpl) ViewStory(id, viewerID string) (*dto.StoryDetailResponse, bool, error) {
	story, err := s.storyRepo.GetByID(id)
	if err != nil {
		return nil, false, apperrors.NewNotFoundError("Story non trouvée")
	}
	if story.Expired(s.now()) {
		return nil, false, apperrors.NewGoneError("Story expirée")
	}

	recorded := false
	if story.UserID != viewerID {
		recorded, err = s.storyRepo.AddView(id, viewerID)
		if err != nil {
			return nil, false, err
		}
	}
	return s.assemble(story, viewerID), recorded, nil
}

func (s *storyServiceImpl) assemble(story *models.Story, viewerID string) *dto.StoryDetailResponse {
	var owner *dto.UserSummary
	if u, err := s.userRepo.GetByID(story.UserID); err == nil {
		owner = dto.NewUserSummary(u)
	}
	return &dto.StoryDetailResponse{
		Story:     *story,
		User:      owner,
		Viewed:    viewerID != "" && s.storyRepo.IsViewed(story.ID, viewerID),
		ViewCount: s.storyRepo.ViewCount(story.ID),
	}
}
