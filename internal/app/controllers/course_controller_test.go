package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

func createCourse(t *testing.T, env *testEnv, token string) string {
	t.Helper()

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses", map[string]any{
		"name":        "Boucle des berges",
		"distance":    12.5,
		"difficulty":  "Moyen",
		"location":    "Lyon",
		"start_point": map[string]any{"lat": 45.767, "lng": 4.833},
		"route_points": []map[string]any{
			{"lat": 45.767, "lng": 4.833},
			{"lat": 45.77, "lng": 4.84},
		},
	}, authHeaders(token))
	assertStatus(t, w, http.StatusCreated)
	return dataMap(t, decodeJSONMap(t, w))["id"].(string)
}

func TestCourseController_Create_DecodesCoordinates(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, token)

	w := performRequest(t, env.router, http.MethodGet, "/api/courses/"+courseID, nil, nil)
	assertStatus(t, w, http.StatusOK)

	data := dataMap(t, decodeJSONMap(t, w))
	start := data["start_point"].(map[string]any)
	assert.Equal(t, 45.767, start["lat"])
	assert.Equal(t, 4.833, start["lng"])
	require.Len(t, data["route_points"].([]any), 2)
}

func TestCourseController_RatingUpsert(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	_, raterToken := createTestUser(t, env, "noteur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, creatorToken)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
		"rating": 4,
	}, authHeaders(raterToken))
	assertStatus(t, w, http.StatusOK)
	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, float64(4), data["average_rating"])
	assert.Equal(t, float64(1), data["rating_count"])

	// A second score from the same user replaces the first one.
	w = performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
		"rating": 2,
	}, authHeaders(raterToken))
	assertStatus(t, w, http.StatusOK)
	data = dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, float64(2), data["average_rating"])
	assert.Equal(t, float64(1), data["rating_count"])
}

func TestCourseController_AverageRoundedToOneDecimal(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, creatorToken)

	_, aToken := createTestUser(t, env, "a@rct.run", models.RoleMember)
	_, bToken := createTestUser(t, env, "b@rct.run", models.RoleMember)
	_, cToken := createTestUser(t, env, "c@rct.run", models.RoleMember)

	for token, score := range map[string]int{aToken: 5, bToken: 4, cToken: 4} {
		w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
			"rating": score,
		}, authHeaders(token))
		assertStatus(t, w, http.StatusOK)
	}

	w := performRequest(t, env.router, http.MethodGet, "/api/courses/"+courseID, nil, nil)
	data := dataMap(t, decodeJSONMap(t, w))
	// 13/3 = 4.333... rounds to 4.3
	assert.Equal(t, 4.3, data["average_rating"])
	assert.Equal(t, float64(3), data["rating_count"])
}

func TestCourseController_Rating_Bounds(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, creatorToken)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
		"rating": 6,
	}, authHeaders(creatorToken))
	assertStatus(t, w, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, w), "La note doit être entre 1 et 5")
}

func TestCourseController_Detail_IncludesUserRating(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	rater, raterToken := createTestUser(t, env, "noteur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, creatorToken)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
		"rating":  5,
		"comment": "Superbe parcours",
	}, authHeaders(raterToken))
	assertStatus(t, w, http.StatusOK)

	w = performRequest(t, env.router, http.MethodGet, "/api/courses/"+courseID, nil, authHeaders(raterToken))
	data := dataMap(t, decodeJSONMap(t, w))

	userRating := data["user_rating"].(map[string]any)
	assert.Equal(t, float64(5), userRating["rating"])
	assert.Equal(t, rater.ID, userRating["user"].(map[string]any)["id"])

	// Anonymous detail has no own rating.
	w = performRequest(t, env.router, http.MethodGet, "/api/courses/"+courseID, nil, nil)
	assert.Nil(t, dataMap(t, decodeJSONMap(t, w))["user_rating"])
}

func TestCourseController_Delete_CascadesRatings(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	_, raterToken := createTestUser(t, env, "noteur@rct.run", models.RoleMember)
	courseID := createCourse(t, env, creatorToken)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/"+courseID+"/rate", map[string]any{
		"rating": 3,
	}, authHeaders(raterToken))
	assertStatus(t, w, http.StatusOK)

	w = performRequest(t, env.router, http.MethodDelete, "/api/courses/"+courseID, nil, authHeaders(creatorToken))
	assertStatus(t, w, http.StatusOK)

	env.store.View(func(d *store.Data) {
		for _, r := range d.Ratings {
			if r.CourseID == courseID {
				t.Errorf("rating survived course deletion: %+v", r)
			}
		}
	})
}

func TestCourseController_RateUnknownCourse(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "noteur@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses/missing/rate", map[string]any{
		"rating": 3,
	}, authHeaders(token))
	assertStatus(t, w, http.StatusNotFound)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Parcours non trouvé")
}

func TestCourseController_DistanceFilter(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "traceur@rct.run", models.RoleMember)
	createCourse(t, env, token) // 12.5 km

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/courses", map[string]any{
		"name":        "Tour du lac",
		"distance":    5.0,
		"difficulty":  "Facile",
		"location":    "Lyon",
		"start_point": map[string]any{"lat": 45.75, "lng": 4.85},
	}, authHeaders(token))
	assertStatus(t, w, http.StatusCreated)

	w = performRequest(t, env.router, http.MethodGet, "/api/courses?minDistance=10", nil, nil)
	assertStatus(t, w, http.StatusOK)
	list := decodeJSONMap(t, w)["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Boucle des berges", list[0].(map[string]any)["name"])

	w = performRequest(t, env.router, http.MethodGet, "/api/courses?maxDistance=10", nil, nil)
	assertStatus(t, w, http.StatusOK)
	list = decodeJSONMap(t, w)["data"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "Tour du lac", list[0].(map[string]any)["name"])
}
