package integration

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairmed/api/internal/core/domain"
	"github.com/pairmed/api/internal/core/ports"
)

// TestCoupleFlow runs the whole pairing lifecycle over HTTP:
// invite -> pending lookup -> accept -> membership -> leave.
func TestCoupleFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter := app.createUser(t)
	invited := app.createUser(t)

	// Step 1: Invite
	resp := app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{
		"invited_email": invited.Email,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)
	inviteID, err := uuid.Parse(created["invite_id"])
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, inviteID)

	// Step 2: Duplicate invite to the same email
	resp = app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{
		"invited_email": invited.Email,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Step 3: Invited side sees the pending invite
	resp = app.do(t, "GET", "/api/couple/invites/pending", invited, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pending domain.Invite
	decodeBody(t, resp, &pending)
	assert.Equal(t, inviteID, pending.ID)
	assert.Equal(t, inviter.Email, pending.InviterEmail)
	assert.Equal(t, domain.InviteStatusPending, pending.Status)
	assert.WithinDuration(t, time.Now().Add(domain.InviteTTL), pending.ExpiresAt, time.Minute)

	// Step 4: Accept
	resp = app.do(t, "POST", "/api/couple/invites/accept", invited, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var accepted map[string]string
	decodeBody(t, resp, &accepted)
	coupleID := accepted["couple_id"]
	require.NotEmpty(t, coupleID)

	// Invite row flipped to accepted
	var status string
	var acceptedAt sql.NullTime
	err = app.DB.QueryRow("SELECT status, accepted_at FROM invites WHERE id = $1", inviteID).Scan(&status, &acceptedAt)
	require.NoError(t, err)
	assert.Equal(t, "accepted", status)
	assert.True(t, acceptedAt.Valid)

	// Step 5: Both sides are members, same couple, creator/member roles
	var inviterMembership, invitedMembership ports.Membership
	resp = app.do(t, "GET", "/api/couple/membership", inviter, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &inviterMembership)

	resp = app.do(t, "GET", "/api/couple/membership", invited, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &invitedMembership)

	assert.True(t, inviterMembership.InCouple)
	assert.True(t, invitedMembership.InCouple)
	assert.Equal(t, coupleID, inviterMembership.CoupleID)
	assert.Equal(t, coupleID, invitedMembership.CoupleID)
	assert.Equal(t, domain.CoupleRoleCreator, inviterMembership.Role)
	assert.Equal(t, domain.CoupleRoleMember, invitedMembership.Role)

	// Step 6: Couple document has both members and default settings
	resp = app.do(t, "GET", "/api/couple/", inviter, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var couple domain.Couple
	decodeBody(t, resp, &couple)
	assert.Len(t, couple.Members, 2)
	assert.Contains(t, couple.Members, inviter.ID)
	assert.Contains(t, couple.Members, invited.ID)
	assert.Equal(t, domain.CoupleStatusActive, couple.Status)
	assert.True(t, couple.Settings.SharedMedications)
	assert.True(t, couple.Settings.SharedReminders)
	assert.True(t, couple.Settings.CrossNotifications)

	// Step 7: Inviter leaves, couple stays active with one member
	resp = app.do(t, "DELETE", "/api/couple/membership", inviter, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, "GET", "/api/couple/membership", inviter, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &inviterMembership)
	assert.False(t, inviterMembership.InCouple)

	var coupleStatus string
	err = app.DB.QueryRow("SELECT status FROM couples WHERE id = $1", coupleID).Scan(&coupleStatus)
	require.NoError(t, err)
	assert.Equal(t, "active", coupleStatus)

	// Step 8: Last member leaves, couple is deactivated but retained
	resp = app.do(t, "DELETE", "/api/couple/membership", invited, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var members int
	err = app.DB.QueryRow("SELECT status, cardinality(members) FROM couples WHERE id = $1", coupleID).Scan(&coupleStatus, &members)
	require.NoError(t, err)
	assert.Equal(t, "inactive", coupleStatus)
	assert.Equal(t, 0, members)

	// Leaving again is a 404
	resp = app.do(t, "DELETE", "/api/couple/membership", invited, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestInvitePreconditions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter := app.createUser(t)

	// Self invite, with different casing
	resp := app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{
		"invited_email": strings.ToUpper(inviter.Email),
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Missing email
	resp = app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Accept with no invite waiting
	resp = app.do(t, "POST", "/api/couple/invites/accept", inviter, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// A paired user cannot invite a third person
	partner := app.createUser(t)
	third := app.createUser(t)

	resp = app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{"invited_email": partner.Email})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = app.do(t, "POST", "/api/couple/invites/accept", partner, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{"invited_email": third.Email})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// A paired user cannot accept another invite either
	resp = app.do(t, "POST", "/api/couple/invites", third, map[string]string{"invited_email": partner.Email})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = app.do(t, "POST", "/api/couple/invites/accept", partner, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCancelInvite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter := app.createUser(t)
	invited := app.createUser(t)

	resp := app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{"invited_email": invited.Email})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)

	resp = app.do(t, "DELETE", "/api/couple/invites/"+created["invite_id"], inviter, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	var status string
	err := app.DB.QueryRow("SELECT status FROM invites WHERE id = $1", created["invite_id"]).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "expired", status)

	// Canceled invite no longer shows up on the invited side
	resp = app.do(t, "GET", "/api/couple/invites/pending", invited, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Canceling a terminal invite is a 404
	resp = app.do(t, "DELETE", "/api/couple/invites/"+created["invite_id"], inviter, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAcceptExpiredInvite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter := app.createUser(t)
	invited := app.createUser(t)

	inviteID := insertInvite(t, app, inviter, invited.Email, time.Now().Add(-time.Hour))

	resp := app.do(t, "POST", "/api/couple/invites/accept", invited, nil)
	require.Equal(t, http.StatusGone, resp.StatusCode)
	resp.Body.Close()

	// Expiry is persisted as a side effect of the failed accept
	var status string
	err := app.DB.QueryRow("SELECT status FROM invites WHERE id = $1", inviteID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "expired", status)

	// No couple was created
	var count int
	err = app.DB.QueryRow("SELECT count(*) FROM couples").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCleanExpiredInvites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter := app.createUser(t)
	other := app.createUser(t)

	insertInvite(t, app, inviter, "stale-1@example.com", time.Now().Add(-time.Hour))
	insertInvite(t, app, other, "stale-2@example.com", time.Now().Add(-2*time.Hour))
	freshID := insertInvite(t, app, other, "fresh@example.com", time.Now().Add(time.Hour))

	count, err := app.CoupleSvc.CleanExpiredInvites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var status string
	err = app.DB.QueryRow("SELECT status FROM invites WHERE id = $1", freshID).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	// Second sweep finds nothing
	count, err = app.CoupleSvc.CleanExpiredInvites(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateCoupleSettings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	inviter, invited := app.pairUsers(t)

	disabled := false
	resp := app.do(t, "PATCH", "/api/couple/settings", invited, map[string]*bool{
		"shared_reminders": &disabled,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, "GET", "/api/couple/", inviter, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var couple domain.Couple
	decodeBody(t, resp, &couple)
	assert.False(t, couple.Settings.SharedReminders)
	assert.True(t, couple.Settings.SharedMedications)
	assert.True(t, couple.Settings.CrossNotifications)

	// Non-members cannot touch settings
	outsider := app.createUser(t)
	resp = app.do(t, "PATCH", "/api/couple/settings", outsider, map[string]*bool{
		"shared_reminders": &disabled,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// pairUsers creates two users and pairs them through the API.
func (app *TestApp) pairUsers(t *testing.T) (testUser, testUser) {
	t.Helper()

	inviter := app.createUser(t)
	invited := app.createUser(t)

	resp := app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{"invited_email": invited.Email})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = app.do(t, "POST", "/api/couple/invites/accept", invited, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	return inviter, invited
}

func insertInvite(t *testing.T, app *TestApp, inviter testUser, invitedEmail string, expiresAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := app.DB.Exec(
		`INSERT INTO invites (id, inviter_user_id, inviter_email, invited_email, expires_at)
		VALUES ($1, $2, $3, $4, $5)`,
		id, inviter.ID, inviter.Email, invitedEmail, expiresAt,
	)
	require.NoError(t, err)
	return id
}
