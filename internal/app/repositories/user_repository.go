package repositories

import (
	"strings"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// UserRepository handles account records.
type UserRepository struct {
	store *store.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// GetByID returns a copy of the user, or ErrNotFound.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var found *models.User
	r.store.View(func(d *store.Data) {
		for i := range d.Users {
			if d.Users[i].ID == id {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// GetByEmail returns a copy of the user, or ErrNotFound. Emails compare
// case-insensitively.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var found *models.User
	r.store.View(func(d *store.Data) {
		for i := range d.Users {
			if strings.EqualFold(d.Users[i].Email, email) {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends a new account. Fails with ErrAlreadyExists when the email is
// taken.
func (r *UserRepository) Create(user models.User) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Users {
			if strings.EqualFold(d.Users[i].Email, user.Email) {
				return ErrAlreadyExists
			}
		}
		d.Users = append(d.Users, user)
		return nil
	})
}

// GetMany returns the users with the given IDs, keyed by ID. Missing IDs are
// simply absent; dangling references are the caller's concern.
func (r *UserRepository) GetMany(ids []string) map[string]models.User {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[string]models.User, len(ids))
	r.store.View(func(d *store.Data) {
		for i := range d.Users {
			if want[d.Users[i].ID] {
				out[d.Users[i].ID] = d.Users[i]
			}
		}
	})
	return out
}

// ListAll returns every user account.
func (r *UserRepository) ListAll() []models.User {
	return r.ListByGroup("")
}

// ListByGroup returns all users, narrowed to one group when group is
// non-empty.
func (r *UserRepository) ListByGroup(group string) []models.User {
	var out []models.User
	r.store.View(func(d *store.Data) {
		for i := range d.Users {
			if group != "" && (d.Users[i].GroupName == nil || *d.Users[i].GroupName != group) {
				continue
			}
			out = append(out, d.Users[i])
		}
	})
	return out
}
