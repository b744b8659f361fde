package repositories

import (
	"sort"
	"time"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// PostRepository handles feed posts, their likes and comments.
type PostRepository struct {
	store *store.Store
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(s *store.Store) *PostRepository {
	return &PostRepository{store: s}
}

// List returns posts newest first, optionally narrowed to one author, sliced
// by offset/limit after sorting.
func (r *PostRepository) List(authorID string, limit, offset int) []models.Post {
	var out []models.Post
	r.store.View(func(d *store.Data) {
		for i := range d.Posts {
			if authorID != "" && d.Posts[i].AuthorID != authorID {
				continue
			}
			out = append(out, d.Posts[i])
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// GetByID returns a copy of the post, or ErrNotFound.
func (r *PostRepository) GetByID(id string) (*models.Post, error) {
	var found *models.Post
	r.store.View(func(d *store.Data) {
		for i := range d.Posts {
			if d.Posts[i].ID == id {
				p := d.Posts[i]
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends a new post.
func (r *PostRepository) Create(post models.Post) error {
	return r.store.Update(func(d *store.Data) error {
		d.Posts = append(d.Posts, post)
		return nil
	})
}

// Update mutates a post in place through fn, or returns ErrNotFound.
func (r *PostRepository) Update(id string, fn func(*models.Post)) (*models.Post, error) {
	var updated *models.Post
	err := r.store.Update(func(d *store.Data) error {
		for i := range d.Posts {
			if d.Posts[i].ID == id {
				fn(&d.Posts[i])
				d.Posts[i].UpdatedAt = time.Now()
				p := d.Posts[i]
				updated = &p
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

// Delete removes a post and cascades to its likes and comments.
func (r *PostRepository) Delete(id string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.Posts {
			if d.Posts[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.Posts = append(d.Posts[:idx], d.Posts[idx+1:]...)

		keptLikes := d.PostLikes[:0]
		for _, l := range d.PostLikes {
			if l.PostID != id {
				keptLikes = append(keptLikes, l)
			}
		}
		d.PostLikes = keptLikes

		keptComments := d.Comments[:0]
		for _, c := range d.Comments {
			if c.PostID != id {
				keptComments = append(keptComments, c)
			}
		}
		d.Comments = keptComments
		return nil
	})
}

// ToggleLike flips the (post, user) like. Presence means liked: an existing
// row is removed, a missing one inserted. Returns the new state and the
// recomputed count.
func (r *PostRepository) ToggleLike(postID, userID string) (liked bool, likeCount int, err error) {
	err = r.store.Update(func(d *store.Data) error {
		exists := false
		for i := range d.Posts {
			if d.Posts[i].ID == postID {
				exists = true
				break
			}
		}
		if !exists {
			return ErrNotFound
		}

		idx := -1
		for i, l := range d.PostLikes {
			if l.PostID == postID && l.UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			d.PostLikes = append(d.PostLikes, models.PostLike{
				PostID:    postID,
				UserID:    userID,
				CreatedAt: time.Now(),
			})
			liked = true
		} else {
			d.PostLikes = append(d.PostLikes[:idx], d.PostLikes[idx+1:]...)
			liked = false
		}

		likeCount = 0
		for _, l := range d.PostLikes {
			if l.PostID == postID {
				likeCount++
			}
		}
		return nil
	})
	return liked, likeCount, err
}

// Likes returns the like records of a post.
func (r *PostRepository) Likes(postID string) []models.PostLike {
	var out []models.PostLike
	r.store.View(func(d *store.Data) {
		for _, l := range d.PostLikes {
			if l.PostID == postID {
				out = append(out, l)
			}
		}
	})
	return out
}

// Comments returns a post's comments oldest first.
func (r *PostRepository) Comments(postID string) []models.Comment {
	var out []models.Comment
	r.store.View(func(d *store.Data) {
		for _, c := range d.Comments {
			if c.PostID == postID {
				out = append(out, c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// AddComment appends a comment. The post must exist.
func (r *PostRepository) AddComment(comment models.Comment) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Posts {
			if d.Posts[i].ID == comment.PostID {
				d.Comments = append(d.Comments, comment)
				return nil
			}
		}
		return ErrNotFound
	})
}

// GetComment returns a comment scoped to its post, or ErrNotFound.
func (r *PostRepository) GetComment(postID, commentID string) (*models.Comment, error) {
	var found *models.Comment
	r.store.View(func(d *store.Data) {
		for i := range d.Comments {
			if d.Comments[i].ID == commentID && d.Comments[i].PostID == postID {
				c := d.Comments[i]
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

// DeleteComment removes a comment scoped to its post.
func (r *PostRepository) DeleteComment(postID, commentID string) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Comments {
			if d.Comments[i].ID == commentID && d.Comments[i].PostID == postID {
				d.Comments = append(d.Comments[:i], d.Comments[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
