package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/pkg/apperrors"
)

// CourseService defines the interface for route operations
type CourseService interface {
	GetAllCourses(filter repositories.CourseFilter) ([]dto.CourseResponse, error)
	GetCourseByID(id, viewerID string) (*dto.CourseDetailResponse, error)
	CreateCourse(userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(id, userID string, role models.Role, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(id, userID string, role models.Role) error
	RateCourse(id, userID string, req *dto.RateCourseRequest) (*dto.RatingSummary, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo *repositories.CourseRepository
	userRepo   *repositories.UserRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		userRepo:   userRepo,
		logger:     logger.With().Str("service", "courses").Logger(),
	}
}

// GetAllCourses lists routes matching the filter.
func (s *courseServiceImpl) GetAllCourses(filter repositories.CourseFilter) ([]dto.CourseResponse, error) {
	courses := s.courseRepo.List(filter)

	out := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, *s.assemble(&courses[i]))
	}
	return out, nil
}

// GetCourseByID returns one route with its full rating list and the viewer's
// own rating, if any.
func (s *courseServiceImpl) GetCourseByID(id, viewerID string) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Parcours non trouvé")
	}

	ratings := s.courseRepo.Ratings(id)
	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		ids = append(ids, r.UserID)
	}
	users := s.userRepo.GetMany(ids)

	detail := &dto.CourseDetailResponse{
		CourseResponse: *s.assemble(course),
		Ratings:        make([]dto.RatingResponse, 0, len(ratings)),
	}
	for _, r := range ratings {
		var author *dto.UserSummary
		if u, ok := users[r.UserID]; ok {
			author = dto.NewUserSummary(&u)
		}
		resp := dto.RatingResponse{Rating: r, User: author}
		detail.Ratings = append(detail.Ratings, resp)
		if viewerID != "" && r.UserID == viewerID {
			own := resp
			detail.UserRating = &own
		}
	}
	return detail, nil
}

// CreateCourse creates a route owned by the caller.
func (s *courseServiceImpl) CreateCourse(userID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	now := time.Now()
	course := models.Course{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Distance:    req.Distance,
		Difficulty:  difficulty,
		Location:    req.Location,
		StartPoint:  *encodePoint(req.StartPoint),
		RoutePoints: encodePoints(req.RoutePoints),
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.courseRepo.Create(course); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create course")
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID).Str("userID", userID).Msg("Course created")
	return s.assemble(&course), nil
}

// UpdateCourse edits a route. Only the creator or an admin may do so.
func (s *courseServiceImpl) UpdateCourse(id, userID string, role models.Role, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Parcours non trouvé")
	}
	if course.CreatedBy != userID && role != models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("Non autorisé à modifier ce parcours")
	}

	updated, err := s.courseRepo.Update(id, func(c *models.Course) {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = req.Description
		}
		if req.Distance != nil {
			c.Distance = *req.Distance
		}
		if req.Difficulty != nil {
			c.Difficulty = *req.Difficulty
		}
		if req.Location != nil {
			c.Location = *req.Location
		}
		if req.StartPoint != nil {
			c.StartPoint = *encodePoint(req.StartPoint)
		}
		if req.RoutePoints != nil {
			c.RoutePoints = encodePoints(req.RoutePoints)
		}
	})
	if err != nil {
		return nil, apperrors.NewNotFoundError("Parcours non trouvé")
	}
	return s.assemble(updated), nil
}

// DeleteCourse removes a route and its ratings.
func (s *courseServiceImpl) DeleteCourse(id, userID string, role models.Role) error {
	course, err := s.courseRepo.GetByID(id)
	if err != nil {
		return apperrors.NewNotFoundError("Parcours non trouvé")
	}
	if course.CreatedBy != userID && role != models.RoleAdmin {
		return apperrors.NewForbiddenError("Non autorisé à supprimer ce parcours")
	}

	if err := s.courseRepo.Delete(id); err != nil {
		return apperrors.NewNotFoundError("Parcours non trouvé")
	}
	s.logger.Info().Str("courseID", id).Msg("Course deleted")
	return nil
}

// RateCourse records the caller's score, replacing any earlier one, and
// returns the recomputed aggregate.
func (s *courseServiceImpl) RateCourse(id, userID string, req *dto.RateCourseRequest) (*dto.RatingSummary, error) {
	err := s.courseRepo.UpsertRating(id, userID, req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Parcours non trouvé")
		}
		return nil, err
	}

	avg, count := ratingAggregate(s.courseRepo.Ratings(id))
	return &dto.RatingSummary{AverageRating: avg, RatingCount: count}, nil
}

func (s *courseServiceImpl) assemble(course *models.Course) *dto.CourseResponse {
	var creator *dto.UserSummary
	if u, err := s.userRepo.GetByID(course.CreatedBy); err == nil {
		creator = dto.NewUserSummary(u)
	}

	avg, count := ratingAggregate(s.courseRepo.Ratings(course.ID))
	return &dto.CourseResponse{
		ID:            course.ID,
		Name:          course.Name,
		Description:   course.Description,
		Distance:      course.Distance,
		Difficulty:    course.Difficulty,
		Location:      course.Location,
		StartPoint:    decodePoint(course.StartPoint),
		RoutePoints:   decodePoints(course.RoutePoints),
		CreatedBy:     course.CreatedBy,
		CreatedAt:     course.CreatedAt,
		UpdatedAt:     course.UpdatedAt,
		AverageRating: avg,
		RatingCount:   count,
		Creator:       creator,
	}
}

// ratingAggregate averages scores rounded to one decimal. Zero ratings yield
// a zero average.
func ratingAggregate(ratings []models.Rating) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10, len(ratings)
}
