package repositories

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// CourseRepository handles running routes and their ratings.
type CourseRepository struct {
	store *store.Store
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(s *store.Store) *CourseRepository {
	return &CourseRepository{store: s}
}

// CourseFilter narrows the course list.
type CourseFilter struct {
	Difficulty  string
	MinDistance *float64
	MaxDistance *float64
}

// List returns matching courses in insertion order.
func (r *CourseRepository) List(filter CourseFilter) []models.Course {
	var out []models.Course
	r.store.View(func(d *store.Data) {
		for i := range d.Courses {
			c := d.Courses[i]
			if filter.Difficulty != "" && c.Difficulty != filter.Difficulty {
				continue
			}
			if filter.MinDistance != nil && c.Distance < *filter.MinDistance {
				continue
			}
			if filter.MaxDistance != nil && c.Distance > *filter.MaxDistance {
				continue
			}
			out = append(out, c)
		}
	})
	return out
}

// GetByID returns a copy of the course, or ErrNotFound.
func (r *CourseRepository) GetByID(id string) (*models.Course, error) {
	var found *models.Course
	r.store.View(func(d *store.Data) {
		for i := range d.Courses {
			if d.Courses[i].ID == id {
				c := d.Courses[i]
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends a new course.
func (r *CourseRepository) Create(course models.Course) error {
	return r.store.Update(func(d *store.Data) error {
		d.Courses = append(d.Courses, course)
		return nil
	})
}

// Update mutates a course in place through fn, or returns ErrNotFound.
func (r *CourseRepository) Update(id string, fn func(*models.Course)) (*models.Course, error) {
	var updated *models.Course
	err := r.store.Update(func(d *store.Data) error {
		for i := range d.Courses {
			if d.Courses[i].ID == id {
				fn(&d.Courses[i])
				d.Courses[i].UpdatedAt = time.Now()
				c := d.Courses[i]
				updated = &c
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a course and cascades to its ratings.
func (r *CourseRepository) Delete(id string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.Courses {
			if d.Courses[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.Courses = append(d.Courses[:idx], d.Courses[idx+1:]...)

		kept := d.Ratings[:0]
		for _, rt := range d.Ratings {
			if rt.CourseID != id {
				kept = append(kept, rt)
			}
		}
		d.Ratings = kept
		return nil
	})
}

// UpsertRating inserts the (course, user) rating, or overwrites score and
// comment in place when the user already rated. One rating per pair.
func (r *CourseRepository) UpsertRating(courseID, userID string, rating int, comment *string) error {
	return r.store.Update(func(d *store.Data) error {
		exists := false
		for i := range d.Courses {
			if d.Courses[i].ID == courseID {
				exists = true
				break
			}
		}
		if !exists {
			return ErrNotFound
		}

		for i := range d.Ratings {
			if d.Ratings[i].CourseID == courseID && d.Ratings[i].UserID == userID {
				d.Ratings[i].Rating = rating
				d.Ratings[i].Comment = comment
				return nil
			}
		}

		d.Ratings = append(d.Ratings, models.Rating{
			ID:        uuid.New().String(),
			CourseID:  courseID,
			UserID:    userID,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: time.Now(),
		})
		return nil
	})
}

// Ratings returns a course's ratings newest first.
func (r *CourseRepository) Ratings(courseID string) []models.Rating {
	var out []models.Rating
	r.store.View(func(d *store.Data) {
		for _, rt := range d.Ratings {
			if rt.CourseID == courseID {
				out = append(out, rt)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
