package repositories

import (
	"sort"
	"time"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// EventRepository handles scheduled runs and their participants.
type EventRepository struct {
	store *store.Store
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(s *store.Store) *EventRepository {
	return &EventRepository{store: s}
}

// EventFilter narrows the event list.
type EventFilter struct {
	Group     string
	EventType string
	// Upcoming keeps events whose date is today or later.
	Upcoming bool
}

// List returns matching events sorted soonest first (date then time, both
// lexicographic on the stored strings).
func (r *EventRepository) List(filter EventFilter) []models.Event {
	today := time.Now().Format("2006-01-02")
	var out []models.Event
	r.store.View(func(d *store.Data) {
		for i := range d.Events {
			e := d.Events[i]
			if filter.Group != "" && e.GroupName != filter.Group {
				continue
			}
			if filter.EventType != "" && e.EventType != filter.EventType {
				continue
			}
			if filter.Upcoming && e.Date < today {
				continue
			}
			out = append(out, e)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// GetByID returns a copy of the event, or ErrNotFound.
func (r *EventRepository) GetByID(id string) (*models.Event, error) {
	var found *models.Event
	r.store.View(func(d *store.Data) {
		for i := range d.Events {
			if d.Events[i].ID == id {
				e := d.Events[i]
				found = &e
				return
			}
		}
	})
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// Create appends a new event.
func (r *EventRepository) Create(event models.Event) error {
	return r.store.Update(func(d *store.Data) error {
		d.Events = append(d.Events, event)
		return nil
	})
}

// Update mutates an event in place through fn, or returns ErrNotFound.
func (r *EventRepository) Update(id string, fn func(*models.Event)) (*models.Event, error) {
	var updated *models.Event
	err := r.store.Update(func(d *store.Data) error {
		for i := range d.Events {
			if d.Events[i].ID == id {
				fn(&d.Events[i])
				d.Events[i].UpdatedAt = time.Now()
				e := d.Events[i]
				updated = &e
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

// Delete removes an event and every participant record attached to it.
func (r *EventRepository) Delete(id string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.Events {
			if d.Events[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.Events = append(d.Events[:idx], d.Events[idx+1:]...)

		kept := d.EventParticipants[:0]
		for _, p := range d.EventParticipants {
			if p.EventID != id {
				kept = append(kept, p)
			}
		}
		d.EventParticipants = kept
		return nil
	})
}

// Join adds the user to the event, enforcing the duplicate and capacity
// checks inside the same critical section. The joiner's joined_events stat is
// bumped along the way.
func (r *EventRepository) Join(eventID, userID string) error {
	return r.store.Update(func(d *store.Data) error {
		var event *models.Event
		for i := range d.Events {
			if d.Events[i].ID == eventID {
				event = &d.Events[i]
				break
			}
		}
		if event == nil {
			return ErrNotFound
		}

		count := 0
		for _, p := range d.EventParticipants {
			if p.EventID == eventID {
				if p.UserID == userID {
					return ErrAlreadyExists
				}
				count++
			}
		}
		if event.MaxParticipants != nil && count >= *event.MaxParticipants {
			return ErrEventFull
		}

		d.EventParticipants = append(d.EventParticipants, models.EventParticipant{
			EventID:  eventID,
			UserID:   userID,
			JoinedAt: time.Now(),
		})

		for i := range d.Users {
			if d.Users[i].ID == userID {
				d.Users[i].JoinedEvents++
				break
			}
		}
		return nil
	})
}

// Leave removes the user's participation and decrements their stat. Returns
// ErrNotFound when the user was not participating.
func (r *EventRepository) Leave(eventID, userID string) error {
	return r.store.Update(func(d *store.Data) error {
		idx := -1
		for i, p := range d.EventParticipants {
			if p.EventID == eventID && p.UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		d.EventParticipants = append(d.EventParticipants[:idx], d.EventParticipants[idx+1:]...)

		for i := range d.Users {
			if d.Users[i].ID == userID && d.Users[i].JoinedEvents > 0 {
				d.Users[i].JoinedEvents--
				break
			}
		}
		return nil
	})
}

// Participants returns the join records for an event, oldest first.
func (r *EventRepository) Participants(eventID string) []models.EventParticipant {
	var out []models.EventParticipant
	r.store.View(func(d *store.Data) {
		for _, p := range d.EventParticipants {
			if p.EventID == eventID {
				out = append(out, p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out
}

// IsJoined reports whether the user participates in the event.
func (r *EventRepository) IsJoined(eventID, userID string) bool {
	joined := false
	r.store.View(func(d *store.Data) {
		for _, p := range d.EventParticipants {
			if p.EventID == eventID && p.UserID == userID {
				joined = true
				return
			}
		}
	})
	return joined
}
