package dto

import (
	"time"

	"github.com/rct/connect/internal/app/models"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateCourseRequest creates a running route.
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,min=3"`
	Description *string `json:"description"`
	Distance    float64 `json:"distance" binding:"required,gt=0"`
	Difficulty  string  `json:"difficulty" binding:"omitempty,oneof=Facile Moyen Difficile"`
	Location    string  `json:"location" binding:"required,min=2"`
	StartPoint  *Point  `json:"start_point" binding:"required"`
	RoutePoints []Point `json:"route_points"`
}

// UpdateCourseRequest updates a route; absent fields keep their value.
type UpdateCourseRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=3"`
	Description *string  `json:"description"`
	Distance    *float64 `json:"distance" binding:"omitempty,gt=0"`
	Difficulty  *string  `json:"difficulty" binding:"omitempty,oneof=Facile Moyen Difficile"`
	Location    *string  `json:"location"`
	StartPoint  *Point   `json:"start_point"`
	RoutePoints []Point  `json:"route_points"`
}

// RateCourseRequest submits or replaces the requester's rating.
type RateCourseRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// CourseResponse is a course with its coordinates decoded and rating stats
// attached.
type CourseResponse struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   *string      `json:"description"`
	Distance      float64      `json:"distance"`
	Difficulty    string       `json:"difficulty"`
	Location      string       `json:"location"`
	StartPoint    Point        `json:"start_point"`
	RoutePoints   []Point      `json:"route_points"`
	CreatedBy     string       `json:"created_by"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	AverageRating float64      `json:"average_rating"`
	RatingCount   int          `json:"rating_count"`
	Creator       *UserSummary `json:"creator"`
}

// RatingResponse is a rating with its author inlined.
type RatingResponse struct {
	models.Rating
	User *UserSummary `json:"user"`
}

// CourseDetailResponse adds the full rating list and the requester's own
// rating to a course.
type CourseDetailResponse struct {
	CourseResponse
	Ratings    []RatingResponse `json:"ratings"`
	UserRating *RatingResponse  `json:"user_rating"`
}

// RatingSummary reports the recomputed aggregate after a rating upsert.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}
