package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/pkg/auth"
	"github.com/rct/connect/internal/store"
)

// Default admin credentials, meant to be changed right after the first login.
const (
	defaultAdminEmail    = "admin@rct.run"
	defaultAdminPassword = "admin1234"
)

// CreateDefaultData seeds the store with the admin account when it holds no
// users yet. An already populated store is left untouched.
func CreateDefaultData(s *store.Store, lgr zerolog.Logger) error {
	empty := false
	s.View(func(d *store.Data) {
		empty = len(d.Users) == 0
	})
	if !empty {
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := models.User{
		ID:        uuid.New().String(),
		Email:     defaultAdminEmail,
		Password:  hash,
		Name:      "Admin RCT",
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Update(func(d *store.Data) error {
		if len(d.Users) > 0 {
			return nil
		}
		d.Users = append(d.Users, admin)
		return nil
	})
	if err != nil {
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
