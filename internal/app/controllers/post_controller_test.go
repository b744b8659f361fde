package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

func createPost(t *testing.T, env *testEnv, token, content string) string {
	t.Helper()

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts", map[string]any{
		"content": content,
	}, authHeaders(token))
	assertStatus(t, w, http.StatusCreated)
	return dataMap(t, decodeJSONMap(t, w))["id"].(string)
}

func TestPostController_LikeToggleRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := createTestUser(t, env, "author@rct.run", models.RoleMember)
	_, likerToken := createTestUser(t, env, "liker@rct.run", models.RoleMember)
	postID := createPost(t, env, authorToken, "10k ce matin, belles sensations")

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/like", nil, authHeaders(likerToken))
	assertStatus(t, w, http.StatusOK)
	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, true, data["liked"])
	assert.Equal(t, float64(1), data["like_count"])

	w = performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/like", nil, authHeaders(likerToken))
	assertStatus(t, w, http.StatusOK)
	data = dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, false, data["liked"])
	assert.Equal(t, float64(0), data["like_count"])
}

func TestPostController_GetPost_ViewerLikeFlag(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := createTestUser(t, env, "author@rct.run", models.RoleMember)
	_, likerToken := createTestUser(t, env, "liker@rct.run", models.RoleMember)
	postID := createPost(t, env, authorToken, "Fractionné 8x400")

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/like", nil, authHeaders(likerToken))
	assertStatus(t, w, http.StatusOK)

	w = performRequest(t, env.router, http.MethodGet, "/api/posts/"+postID, nil, authHeaders(likerToken))
	assert.Equal(t, true, dataMap(t, decodeJSONMap(t, w))["is_liked"])

	w = performRequest(t, env.router, http.MethodGet, "/api/posts/"+postID, nil, authHeaders(authorToken))
	assert.Equal(t, false, dataMap(t, decodeJSONMap(t, w))["is_liked"])

	// Anonymous read works, without personalization.
	w = performRequest(t, env.router, http.MethodGet, "/api/posts/"+postID, nil, nil)
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, false, dataMap(t, decodeJSONMap(t, w))["is_liked"])
}

func TestPostController_Comments(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := createTestUser(t, env, "author@rct.run", models.RoleMember)
	commenter, commenterToken := createTestUser(t, env, "commenter@rct.run", models.RoleMember)
	postID := createPost(t, env, authorToken, "Semi dimanche, qui vient ?")

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/comments", map[string]any{
		"content": "Présent !",
	}, authHeaders(commenterToken))
	assertStatus(t, w, http.StatusCreated)

	data := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, "Présent !", data["content"])
	require.NotNil(t, data["author"])
	assert.Equal(t, commenter.ID, data["author"].(map[string]any)["id"])

	w = performRequest(t, env.router, http.MethodGet, "/api/posts/"+postID, nil, nil)
	detail := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, float64(1), detail["comment_count"])
	require.Len(t, detail["comments"].([]any), 1)
}

func TestPostController_Delete_CascadesLikesAndComments(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := createTestUser(t, env, "author@rct.run", models.RoleMember)
	_, otherToken := createTestUser(t, env, "other@rct.run", models.RoleMember)
	postID := createPost(t, env, authorToken, "Post éphémère")

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/like", nil, authHeaders(otherToken))
	assertStatus(t, w, http.StatusOK)
	w = performJSONRequest(t, env.router, http.MethodPost, "/api/posts/"+postID+"/comments", map[string]any{
		"content": "Un commentaire",
	}, authHeaders(otherToken))
	assertStatus(t, w, http.StatusCreated)

	w = performRequest(t, env.router, http.MethodDelete, "/api/posts/"+postID, nil, authHeaders(authorToken))
	assertStatus(t, w, http.StatusOK)

	env.store.View(func(d *store.Data) {
		for _, l := range d.PostLikes {
			if l.PostID == postID {
				t.Errorf("like survived post deletion: %+v", l)
			}
		}
		for _, c := range d.Comments {
			if c.PostID == postID {
				t.Errorf("comment survived post deletion: %+v", c)
			}
		}
	})
}

func TestPostController_Update_NotAuthor(t *testing.T) {
	env := setupTestEnv(t)
	_, authorToken := createTestUser(t, env, "author@rct.run", models.RoleMember)
	_, otherToken := createTestUser(t, env, "other@rct.run", models.RoleMember)
	postID := createPost(t, env, authorToken, "Contenu original")

	w := performJSONRequest(t, env.router, http.MethodPut, "/api/posts/"+postID, map[string]any{
		"content": "Contenu piraté",
	}, authHeaders(otherToken))
	assertStatus(t, w, http.StatusForbidden)
}

func TestPostController_LikeUnknownPost(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "liker@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/posts/missing/like", nil, authHeaders(token))
	assertStatus(t, w, http.StatusNotFound)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Publication non trouvée")
}
