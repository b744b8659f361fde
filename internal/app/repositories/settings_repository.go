package repositories

import (
	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// SettingsRepository handles per-user preference records. Records are created
// lazily on first access, so a user who never touched their settings still
// gets the defaults back.
type SettingsRepository struct {
	store *store.Store
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(s *store.Store) *SettingsRepository {
	return &SettingsRepository{store: s}
}

// GetOrCreate returns the user's settings, creating the default record when
// none exists yet.
func (r *SettingsRepository) GetOrCreate(userID string) (*models.UserSettings, error) {
	var found *models.UserSettings
	r.store.View(func(d *store.Data) {
		for i := range d.UserSettings {
			if d.UserSettings[i].UserID == userID {
				s := d.UserSettings[i]
				found = &s
				return
			}
		}
	})
	if found != nil {
		return found, nil
	}

	created := models.DefaultSettings(userID)
	err := r.store.Update(func(d *store.Data) error {
		// Another request may have created the record between the read
		// and this write.
		for i := range d.UserSettings {
			if d.UserSettings[i].UserID == userID {
				created = d.UserSettings[i]
				return nil
			}
		}
		d.UserSettings = append(d.UserSettings, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies fn to the user's settings record, creating the default one
// first when absent. fn receives a pointer into the store and mutates it in
// place.
func (r *SettingsRepository) Update(userID string, fn func(*models.UserSettings)) (*models.UserSettings, error) {
	var updated models.UserSettings
	err := r.store.Update(func(d *store.Data) error {
		idx := -1
		for i := range d.UserSettings {
			if d.UserSettings[i].UserID == userID {
				idx = i
				break
			}
		}
		if idx == -1 {
			d.UserSettings = append(d.UserSettings, models.DefaultSettings(userID))
			idx = len(d.UserSettings) - 1
		}
		fn(&d.UserSettings[idx])
		updated = d.UserSettings[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
