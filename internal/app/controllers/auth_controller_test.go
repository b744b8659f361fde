package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/pkg/auth"
)

func TestAuthController_Register(t *testing.T) {
	env := setupTestEnv(t)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "marie@rct.run",
		"password": "password123",
		"name":     "Marie",
	}, nil)
	assertStatus(t, w, http.StatusCreated)

	data := dataMap(t, decodeJSONMap(t, w))
	require.NotEmpty(t, data["token"])

	user := data["user"].(map[string]any)
	assert.Equal(t, "marie@rct.run", user["email"])
	assert.Equal(t, "member", user["role"])
	assert.NotContains(t, user, "password")
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	createTestUser(t, env, "marie@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "marie@rct.run",
		"password": "password123",
		"name":     "Marie",
	}, nil)
	assertStatus(t, w, http.StatusConflict)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Cet email est déjà utilisé")
}

func TestAuthController_Register_ShortPassword(t *testing.T) {
	env := setupTestEnv(t)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "marie@rct.run",
		"password": "short",
		"name":     "Marie",
	}, nil)
	assertStatus(t, w, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Le mot de passe doit contenir au moins 8 caractères")
}

func TestAuthController_Login(t *testing.T) {
	env := setupTestEnv(t)
	createTestUser(t, env, "marie@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "marie@rct.run",
		"password": "password123",
	}, nil)
	assertStatus(t, w, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, w))
	assert.NotEmpty(t, data["token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	createTestUser(t, env, "marie@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "marie@rct.run",
		"password": "wrong-password",
	}, nil)
	assertStatus(t, w, http.StatusUnauthorized)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Email ou mot de passe incorrect")
}

func TestAuthController_Login_UnknownEmail(t *testing.T) {
	env := setupTestEnv(t)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@rct.run",
		"password": "password123",
	}, nil)
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestAuthController_Me(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env, "marie@rct.run", models.RoleCoach)

	w := performRequest(t, env.router, http.MethodGet, "/api/auth/me", nil, authHeaders(token))
	assertStatus(t, w, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, user.ID, data["id"])
	assert.Equal(t, "coach", data["role"])
}

func TestAuthController_Me_NoToken(t *testing.T) {
	env := setupTestEnv(t)

	w := performRequest(t, env.router, http.MethodGet, "/api/auth/me", nil, nil)
	assertStatus(t, w, http.StatusUnauthorized)
}

func TestAuthController_Me_ExpiredToken(t *testing.T) {
	env := setupTestEnv(t)
	user, _ := createTestUser(t, env, "marie@rct.run", models.RoleMember)

	// Same secret, lifetime already over.
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: -time.Minute,
		TokenIssuer:    "rct-connect-test",
	})
	token, _, err := expired.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)

	w := performRequest(t, env.router, http.MethodGet, "/api/auth/me", nil, authHeaders(token))
	assertStatus(t, w, http.StatusUnauthorized)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Session expirée")
}
