package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

// startConversation opens (or reopens) the pair's conversation: 201 the
// first time, 200 when it already exists.
func startConversation(t *testing.T, env *testEnv, token, participantID string, status int) string {
	t.Helper()

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations", map[string]any{
		"participant_id": participantID,
	}, authHeaders(token))
	assertStatus(t, w, status)
	return dataMap(t, decodeJSONMap(t, w))["id"].(string)
}

func TestMessageController_StartConversation_PairIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	alice, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	bob, bobToken := createTestUser(t, env, "bob@rct.run", models.RoleMember)

	first := startConversation(t, env, aliceToken, bob.ID, http.StatusCreated)

	// Same pair again, from either side, yields the same conversation and
	// reports it was not created anew.
	second := startConversation(t, env, aliceToken, bob.ID, http.StatusOK)
	third := startConversation(t, env, bobToken, alice.ID, http.StatusOK)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)

	env.store.View(func(d *store.Data) {
		if len(d.Conversations) != 1 {
			t.Errorf("expected 1 conversation, got %d", len(d.Conversations))
		}
	})
}

func TestMessageController_StartConversation_WithSelf(t *testing.T) {
	env := setupTestEnv(t)
	self, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations", map[string]any{
		"participant_id": self.ID,
	}, authHeaders(token))
	assertStatus(t, w, http.StatusBadRequest)
}

func TestMessageController_StartConversation_UnknownUser(t *testing.T) {
	env := setupTestEnv(t)
	_, token := createTestUser(t, env, "alice@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations", map[string]any{
		"participant_id": "missing",
	}, authHeaders(token))
	assertStatus(t, w, http.StatusNotFound)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Utilisateur non trouvé")
}

func TestMessageController_SendAndRead(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	bob, bobToken := createTestUser(t, env, "bob@rct.run", models.RoleMember)
	conversationID := startConversation(t, env, aliceToken, bob.ID, http.StatusCreated)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations/"+conversationID, map[string]any{
		"content": "On court demain ?",
	}, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusCreated)
	message := dataMap(t, decodeJSONMap(t, w))
	assert.Equal(t, false, message["read"])

	// Bob sees one unread conversation.
	w = performRequest(t, env.router, http.MethodGet, "/api/messages/conversations", nil, authHeaders(bobToken))
	assertStatus(t, w, http.StatusOK)
	list := decodeJSONMap(t, w)["data"].([]any)
	require.Len(t, list, 1)
	conv := list[0].(map[string]any)
	assert.Equal(t, float64(1), conv["unread_count"])
	assert.Equal(t, "On court demain ?", *jsonString(conv["last_message"]))

	// Opening the conversation marks incoming messages read.
	w = performRequest(t, env.router, http.MethodGet, "/api/messages/conversations/"+conversationID, nil, authHeaders(bobToken))
	assertStatus(t, w, http.StatusOK)
	detail := dataMap(t, decodeJSONMap(t, w))
	messages := detail["messages"].([]any)
	require.Len(t, messages, 1)

	w = performRequest(t, env.router, http.MethodGet, "/api/messages/conversations", nil, authHeaders(bobToken))
	list = decodeJSONMap(t, w)["data"].([]any)
	assert.Equal(t, float64(0), list[0].(map[string]any)["unread_count"])

	// Alice's own unread counter never counted her message.
	w = performRequest(t, env.router, http.MethodGet, "/api/messages/conversations", nil, authHeaders(aliceToken))
	list = decodeJSONMap(t, w)["data"].([]any)
	assert.Equal(t, float64(0), list[0].(map[string]any)["unread_count"])
}

func TestMessageController_SendToForeignConversation(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	bob, _ := createTestUser(t, env, "bob@rct.run", models.RoleMember)
	_, eveToken := createTestUser(t, env, "eve@rct.run", models.RoleMember)
	conversationID := startConversation(t, env, aliceToken, bob.ID, http.StatusCreated)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations/"+conversationID, map[string]any{
		"content": "Je m'incruste",
	}, authHeaders(eveToken))
	assertStatus(t, w, http.StatusNotFound)
}

func TestMessageController_Leave_LastParticipantDeletesThread(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	bob, bobToken := createTestUser(t, env, "bob@rct.run", models.RoleMember)
	conversationID := startConversation(t, env, aliceToken, bob.ID, http.StatusCreated)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations/"+conversationID, map[string]any{
		"content": "Salut",
	}, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusCreated)

	w = performRequest(t, env.router, http.MethodDelete, "/api/messages/conversations/"+conversationID+"/leave", nil, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusOK)

	// Bob still sees the thread.
	w = performRequest(t, env.router, http.MethodGet, "/api/messages/conversations", nil, authHeaders(bobToken))
	require.Len(t, decodeJSONMap(t, w)["data"].([]any), 1)

	w = performRequest(t, env.router, http.MethodDelete, "/api/messages/conversations/"+conversationID+"/leave", nil, authHeaders(bobToken))
	assertStatus(t, w, http.StatusOK)

	env.store.View(func(d *store.Data) {
		if len(d.Conversations) != 0 {
			t.Errorf("conversation survived last leave: %+v", d.Conversations)
		}
		if len(d.Messages) != 0 {
			t.Errorf("messages survived last leave: %+v", d.Messages)
		}
	})
}

func TestMessageController_MarkMessageRead_SenderForbidden(t *testing.T) {
	env := setupTestEnv(t)
	_, aliceToken := createTestUser(t, env, "alice@rct.run", models.RoleMember)
	bob, bobToken := createTestUser(t, env, "bob@rct.run", models.RoleMember)
	conversationID := startConversation(t, env, aliceToken, bob.ID, http.StatusCreated)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/messages/conversations/"+conversationID, map[string]any{
		"content": "Salut",
	}, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusCreated)
	messageID := dataMap(t, decodeJSONMap(t, w))["id"].(string)

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/messages/"+messageID+"/read", nil, authHeaders(aliceToken))
	assertStatus(t, w, http.StatusForbidden)

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/messages/"+messageID+"/read", nil, authHeaders(bobToken))
	assertStatus(t, w, http.StatusOK)
}

func jsonString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}
