package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rct/connect/internal/app/models"
	"github.com/rct/connect/internal/store"
)

func TestNotificationController_Broadcast_ExcludesSender(t *testing.T) {
	env := setupTestEnv(t)
	coach, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)
	createTestUser(t, env, "a@rct.run", models.RoleMember)
	createTestUser(t, env, "b@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":    "announcement",
		"title":   "Sortie annulée",
		"message": "La sortie de dimanche est annulée, pluie verglaçante.",
	}, authHeaders(coachToken))
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, float64(2), dataMap(t, decodeJSONMap(t, w))["count"])

	// The sender got nothing.
	assert.Empty(t, env.repos.Notifications.ListByUser(coach.ID, false))
}

func TestNotificationController_Broadcast_TargetGroupAll(t *testing.T) {
	env := setupTestEnv(t)
	_, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)
	a, _ := createTestUser(t, env, "a@rct.run", models.RoleMember)
	b, _ := createTestUser(t, env, "b@rct.run", models.RoleMember)
	setUserGroup(t, env, a.ID, "Groupe A")

	// "all" is not a group name: it means every user, grouped or not.
	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":         "announcement",
		"title":        "Assemblée générale",
		"message":      "Samedi 18h à la maison du club.",
		"target_group": "all",
	}, authHeaders(coachToken))
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, float64(2), dataMap(t, decodeJSONMap(t, w))["count"])

	assert.Len(t, env.repos.Notifications.ListByUser(a.ID, false), 1)
	assert.Len(t, env.repos.Notifications.ListByUser(b.ID, false), 1)
}

func TestNotificationController_Broadcast_TargetGroup(t *testing.T) {
	env := setupTestEnv(t)
	_, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)

	groupA := "Groupe A"
	inGroup, _ := createTestUser(t, env, "a@rct.run", models.RoleMember)
	outGroup, _ := createTestUser(t, env, "b@rct.run", models.RoleMember)
	setUserGroup(t, env, inGroup.ID, groupA)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":         "reminder",
		"title":        "Fractionné",
		"message":      "Rendez-vous mardi 19h au stade.",
		"target_group": groupA,
	}, authHeaders(coachToken))
	assertStatus(t, w, http.StatusCreated)
	assert.Equal(t, float64(1), dataMap(t, decodeJSONMap(t, w))["count"])

	assert.Len(t, env.repos.Notifications.ListByUser(inGroup.ID, false), 1)
	assert.Empty(t, env.repos.Notifications.ListByUser(outGroup.ID, false))
}

func TestNotificationController_Broadcast_MemberForbidden(t *testing.T) {
	env := setupTestEnv(t)
	_, memberToken := createTestUser(t, env, "member@rct.run", models.RoleMember)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":    "announcement",
		"title":   "Hello",
		"message": "World",
	}, authHeaders(memberToken))
	assertStatus(t, w, http.StatusForbidden)
}

func TestNotificationController_Broadcast_InvalidType(t *testing.T) {
	env := setupTestEnv(t)
	_, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":    "spam",
		"title":   "Hello",
		"message": "World",
	}, authHeaders(coachToken))
	assertStatus(t, w, http.StatusBadRequest)
	assertEnvelopeError(t, decodeJSONMap(t, w), "Type de notification invalide")
}

func TestNotificationController_ListAndMarkRead(t *testing.T) {
	env := setupTestEnv(t)
	_, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)
	member, memberToken := createTestUser(t, env, "member@rct.run", models.RoleMember)

	for _, title := range []string{"Première", "Deuxième"} {
		w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
			"type":    "announcement",
			"title":   title,
			"message": "Contenu",
		}, authHeaders(coachToken))
		assertStatus(t, w, http.StatusCreated)
	}

	w := performRequest(t, env.router, http.MethodGet, "/api/notifications", nil, authHeaders(memberToken))
	assertStatus(t, w, http.StatusOK)

	body := decodeJSONMap(t, w)
	list := body["data"].([]any)
	require.Len(t, list, 2)
	// Newest first.
	assert.Equal(t, "Deuxième", list[0].(map[string]any)["title"])
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["unread_count"])

	id := list[0].(map[string]any)["id"].(string)
	w = performJSONRequest(t, env.router, http.MethodPut, "/api/notifications/"+id+"/read", nil, authHeaders(memberToken))
	assertStatus(t, w, http.StatusOK)

	w = performRequest(t, env.router, http.MethodGet, "/api/notifications?unreadOnly=true", nil, authHeaders(memberToken))
	body = decodeJSONMap(t, w)
	assert.Len(t, body["data"].([]any), 1)
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["unread_count"])

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/notifications/read-all", nil, authHeaders(memberToken))
	assertStatus(t, w, http.StatusOK)
	assert.Equal(t, 0, env.repos.Notifications.UnreadCount(member.ID))
}

func TestNotificationController_MarkRead_ForeignNotification(t *testing.T) {
	env := setupTestEnv(t)
	_, coachToken := createTestUser(t, env, "coach@rct.run", models.RoleCoach)
	member, _ := createTestUser(t, env, "member@rct.run", models.RoleMember)
	_, otherToken := createTestUser(t, env, "other@rct.run", models.RoleMember)
	setUserGroup(t, env, member.ID, "Groupe Z")

	w := performJSONRequest(t, env.router, http.MethodPost, "/api/notifications/broadcast", map[string]any{
		"type":         "announcement",
		"title":        "Privée",
		"message":      "Contenu",
		"target_group": "Groupe Z",
	}, authHeaders(coachToken))
	assertStatus(t, w, http.StatusCreated)

	notifications := env.repos.Notifications.ListByUser(member.ID, false)
	require.Len(t, notifications, 1)

	w = performJSONRequest(t, env.router, http.MethodPut, "/api/notifications/"+notifications[0].ID+"/read", nil, authHeaders(otherToken))
	assertStatus(t, w, http.StatusNotFound)
}

// setUserGroup assigns the user to a club group.
func setUserGroup(t *testing.T, env *testEnv, userID, group string) {
	t.Helper()
	err := env.store.Update(func(d *store.Data) error {
		for i := range d.Users {
			if d.Users[i].ID == userID {
				d.Users[i].GroupName = &group
			}
		}
		return nil
	})
	require.NoError(t, err)
}
