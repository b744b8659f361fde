package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

func TestSettingsController_DefaultsOnFirstRead(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performRequest(t, env.router, http.MethodGet, "/api/settings", nil, authHeaders(token))
	assertStatus(t, w, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, user.ID, data["user_id"])
	assert.Equal(t, "system", data["theme"])
	assert.Equal(t, "fr", data["language"])
	assert.Equal(t, true, data["notifications_enabled"])
	assert.Equal(t, true, data["email_notifications"])

	// The defaults are persisted, not recomputed on every read.
	var stored int
	env.store.View(func(d *store.Data) {
		for _, s := range d.UserSettings {
			if s.UserID == user.ID {
				stored++
			}
		}
	})
	assert.Equal(t, 1, stored)
}

func TestSettingsController_PartialUpdate(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/settings", map[string]any{
		"theme": "dark",
	}, authHeaders(token))
	assertStatus(t, w, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, "dark", data["theme"])
	// Untouched fields keep their defaults.
	assert.Equal(t, "fr", data["language"])
	assert.Equal(t, true, data["notifications_enabled"])

	w = performRequest(t, env.router, http.MethodGet, "/api/settings", nil, authHeaders(token))
	assert.Equal(t, "dark", dataMap(t, decodeJSONMap(t, w))["theme"])
}

func TestSettingsController_EmptyUpdateRejected(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/settings", map[string]any{}, authHeaders(token))
	assertStatus(t, w, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Aucun paramètre à mettre à jour")
}

func TestSettingsController_InvalidTheme(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/settings/theme", map[string]any{
		"theme": "sepia",
	}, authHeaders(token))
	assertStatus(t, w, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Thème invalide")
}

func TestSettingsController_ShortcutEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/settings/theme", map[string]any{
		"theme": "light",
	}, authHeaders(token))
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "light", dataMap(t, decodeJSONMap(t, w))["theme"])

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/settings/language", map[string]any{
		"language": "en",
	}, authHeaders(token))
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, "en", dataMap(t, decodeJSONMap(t, w))["language"])

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/settings/notifications", map[string]any{
		"notifications_enabled": false,
	}, authHeaders(token))
	assertStatus(t, w, http.StatusOK)
	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, false, data["notifications_enabled"])
	assert.Equal(t, true, data["email_notifications"])

	// All changes land in the same persisted record.
	w = performRequest(t, env.router, http.MethodGet, "/api/settings", nil, authHeaders(token))
	data = dataMap(t, decodeJSONMap(t, w))
	require.Equal(t, "light", data["theme"])
	require.Equal(t, "en", data["language"])
	require.Equal(t, false, data["notifications_enabled"])
}

func TestSettingsController_ScopedPerUser(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	_, bobToken := createTestUser(t, env, "bob@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/settings", map[string]any{
		"theme": "dark",
	}, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusOK)

	w = performRequest(t, env.router, http.MethodGet, "/api/settings", nil, authHeaders(bobToken))
	assert.Equal(t, "system", dataMap(t, decodeJSONMap(t, w))["theme"])
}
