package repositories

import (
	"time"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// StoryRepository handles stories and their view records. Expired stories
// stay in the collection; read paths filter them out.
type StoryRepository struct {
	store *store.Store
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(s *store.Store) *StoryRepository {
	return &StoryRepository{store: s}
}

// ListActive returns the stories still visible at now, in insertion order.
func (r *StoryRepository) ListActive(now time.Time) []models.Story {
	var out []models.Story
	r.store.View(func(d *store.Data) {
		for i := range d.Stories {
			if !d.Stories[i].Expired(now) {
				out = append(out, d.Stories[i])
			}
		}
	})
	return out
}

// GetByID returns a copy of the story regardless of expiry, or ErrNotFound.
// Expiry policy is the service's call.
func (r *StoryRepository) GetByID(id string) (*models.Story, error) {
	var found *models.Story
	r.store.View(func(d *store.Data) {
		for i := range d.Stories {
			if d.Stories[i].ID == id {
				s := d.Stories[i]
				found = &s
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends a new story.
func (r *StoryRepository) Create(story models.Story) error {
	return r.store.Update(func(d *store.Data) error {
		d.Stories = append(d.Stories, story)
		return nil
	})
}

// Delete removes a story and cascades to its views.
func (r *StoryRepository) Delete(id string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.Stories {
			if d.Stories[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.Stories = append(d.Stories[:idx], d.Stories[idx+1:]...)

		kept := d.StoryViews[:0]
		for _, v := range d.StoryViews {
			if v.StoryID != id {
				kept = append(kept, v)
			}
		}
		d.StoryViews = kept
		return nil
	})
}

// AddView records that the user saw the story. Returns false without writing
// when a view already exists.
func (r *StoryRepository) AddView(storyID, userID string) (added bool, err error) {
	err = r.store.Update(func(d *store.Data) error {
		exists := false
		for i := range d.Stories {
			if d.Stories[i].ID == storyID {
				exists = true
				break
			}
		}
		if !exists {
			return ErrNotFound
		}

		for _, v := range d.StoryViews {
			if v.StoryID == storyID && v.UserID == userID {
				added = false
				return nil
			}
		}
		d.StoryViews = append(d.StoryViews, models.StoryView{
			StoryID:  storyID,
			UserID:   userID,
			ViewedAt: time.Now(),
		})
		added = true
		return nil
	})
	return added, err
}

// ViewCount returns the number of views on a story.
func (r *StoryRepository) ViewCount(storyID string) int {
	count := 0
	r.store.View(func(d *store.Data) {
		for _, v := range d.StoryViews {
			if v.StoryID == storyID {
				count++
			}
		}
	})
	return count
}

// ViewedBy returns the set of story IDs the user has viewed.
func (r *StoryRepository) ViewedBy(userID string) map[string]bool {
	out := make(map[string]bool)
	r.store.View(func(d *store.Data) {
		for _, v := range d.StoryViews {
			if v.UserID == userID {
				out[v.StoryID] = true
			}
		}
	})
	return out
}

// IsViewed reports whether the user has viewed the story.
func (r *StoryRepository) IsViewed(storyID, userID string) bool {
	viewed := false
	r.store.View(func(d *store.Data) {
		for _, v := range d.StoryViews {
			if v.StoryID == storyID && v.UserID == userID {
				viewed = true
				return
			}
		}
	})
	return viewed
}
