package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/controllers"
	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/app/repositories"
	"github.com/rct/connect/internal/app/routes"
	"github.com/rct/connect/internal/app/services"
	"github.com/rct/connect/internal/middleware"
	"github.com/rct/connect/internal/pkg/auth"
	"github.com/rct/connect/internal/pkg/ws"
	"github.com/rct/connect/internal/store"
)

type testEnv struct {
	router   *gin.Engine
	store    *store.Store
	repos    *repositories.Repositories
	services *services.Services
	jwt      *auth.JWTService
	hub      *ws.Hub
}

var testSetupOnce sync.Once

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testSetupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
	})

	lgr := zerolog.Nop()

	s, err := store.Open(filepath.Join(t.TempDir(), "rct.json"), lgr)
	if err != nil {
		t.Fatalf("failed opening store: %v", err)
	}

	repos := repositories.NewRepositories(s)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "rct-connect-test",
	})

	hub := ws.NewHub(lgr)
	go hub.Run()

	svcs := services.NewServices(repos, jwtService, hub, lgr)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	wsHandler := ws.NewHandler(hub, jwtService, lgr)

	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewAuthController(svcs.Auth),
		controllers.NewEventController(svcs.Events),
		controllers.NewPostController(svcs.Posts),
		controllers.NewStoryController(svcs.Stories),
		controllers.NewCourseController(svcs.Courses),
		controllers.NewMessageController(svcs.Messages),
		controllers.NewNotificationController(svcs.Notifications),
		controllers.NewSettingsController(svcs.Settings),
		wsHandler,
		authMiddleware,
	)

	return &testEnv{
		router:   router,
		store:    s,
		repos:    repos,
		services: svcs,
		jwt:      jwtService,
		hub:      hub,
	}
}

func createTestUser(t *testing.T, env *testEnv, email string, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed hashing password: %v", err)
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  hash,
		Name:      "Test Runner",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := env.repos.Users.Create(user); err != nil {
		t.Fatalf("failed creating test user: %v", err)
	}

	token, _, err := env.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		t.Fatalf("failed generating auth token: %v", err)
	}

	return user, token
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performJSONRequest(t *testing.T, router *gin.Engine, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	requestHeaders := map[string]string{}
	for key, value := range headers {
		requestHeaders[key] = value
	}
	if payload != nil {
		requestHeaders["Content-Type"] = "application/json"
	}

	return performRequest(t, router, method, path, body, requestHeaders)
}

func decodeJSONMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed decoding JSON response: %v body=%q", err, w.Body.String())
	}
	return payload
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("expected status %d, got %d body=%q", expected, w.Code, w.Body.String())
	}
}

func assertEnvelopeError(t *testing.T, body map[string]any, expected string) {
	t.Helper()
	if success, _ := body["success"].(bool); success {
		t.Fatalf("expected success=false, got %+v", body)
	}
	if got, _ := body["error"].(string); got != expected {
		t.Fatalf("expected error %q, got %q", expected, got)
	}
}

func dataMap(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %+v", body)
	}
	return data
}
