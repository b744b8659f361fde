package repositories

import (
	"sort"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// NotificationRepository handles per-user notifications.
type NotificationRepository struct {
	store *store.Store
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(s *store.Store) *NotificationRepository {
	return &NotificationRepository{store: s}
}

// ListByUser returns the user's notifications newest first.
func (r *NotificationRepository) ListByUser(userID string, unreadOnly bool) []models.Notification {
	var out []models.Notification
	r.store.View(func(d *store.Data) {
		for i := range d.Notifications {
			n := d.Notifications[i]
			if n.UserID != userID {
				continue
			}
			if unreadOnly && n.Read {
				continue
			}
			out = append(out, n)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// UnreadCount returns the user's unread notification count.
func (r *NotificationRepository) UnreadCount(userID string) int {
	count := 0
	r.store.View(func(d *store.Data) {
		for i := range d.Notifications {
			if d.Notifications[i].UserID == userID && !d.Notifications[i].Read {
				count++
			}
		}
	})
	return count
}

// MarkRead marks one notification read. Scoped to the owner: another user's
// notification is ErrNotFound, not forbidden.
func (r *NotificationRepository) MarkRead(id, userID string) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Notifications {
			if d.Notifications[i].ID == id && d.Notifications[i].UserID == userID {
				d.Notifications[i].Read = true
				return nil
			}
		}
		return ErrNotFound
	})
}

// MarkAllRead marks every notification of the user read.
func (r *NotificationRepository) MarkAllRead(userID string) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Notifications {
			if d.Notifications[i].UserID == userID {
				d.Notifications[i].Read = true
			}
		}
		return nil
	})
}

// Delete removes one notification, scoped to the owner.
func (r *NotificationRepository) Delete(id, userID string) error {
	return r.store.Update(func(d *store.Data) error {
		for i := range d.Notifications {
			if d.Notifications[i].ID == id && d.Notifications[i].UserID == userID {
				d.Notifications = append(d.Notifications[:i], d.Notifications[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// CreateMany appends a batch of notifications in one persist.
func (r *NotificationRepository) CreateMany(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.store.Update(func(d *store.Data) error {
		d.Notifications = append(d.Notifications, notifications...)
		return nil
	})
}
