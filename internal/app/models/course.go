package models

import "time"

// Course difficulties
const (
	DifficultyEasy   = "Facile"
	DifficultyMedium = "Moyen"
	DifficultyHard   = "Difficile"
)

// Course is a running route. StartPoint and RoutePoints hold serialized
// coordinate lists, matching the on-disk document layout.
type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Distance    float64   `json:"distance"`
	Difficulty  string    `json:"difficulty"`
	Location    string    `json:"location"`
	StartPoint  string    `json:"start_point"`
	RoutePoints string    `json:"route_points"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Rating is a 1-5 score on a course. At most one per (course, user); a
// re-rating overwrites in place.
type Rating struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
