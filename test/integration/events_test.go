package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventFeed checks that the notify triggers surface writes on the
// LISTEN/NOTIFY channel.
func TestEventFeed(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	ctx, cancelCtx := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelCtx()

	events, cancel, err := app.EventFeed.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	// Give the listener a moment to attach before writing
	time.Sleep(500 * time.Millisecond)

	inviter := app.createUser(t)
	invited := app.createUser(t)

	resp := app.do(t, "POST", "/api/couple/invites", inviter, map[string]string{
		"invited_email": invited.Email,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created map[string]string
	decodeBody(t, resp, &created)

	select {
	case ev := <-events:
		assert.Equal(t, "invites", ev.Table)
		assert.Equal(t, "insert", ev.Op)
		assert.Equal(t, created["invite_id"], ev.ID)
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for invite event")
	}

	// Accepting produces events for the couple insert and the invite update
	resp = app.do(t, "POST", "/api/couple/invites/accept", invited, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	seen := map[string]bool{}
	deadline := time.After(10 * time.Second)
	for len(seen) < 2 {
		select {
		case ev := <-events:
			seen[ev.Table+"/"+ev.Op] = true
		case <-deadline:
			t.Fatalf("timed out waiting for accept events, saw %v", seen)
		}
	}
	assert.True(t, seen["couples/insert"])
	assert.True(t, seen["invites/update"])
}
