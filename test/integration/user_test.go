package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairmed/api/internal/core/domain"
)

func TestGetMe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	user := app.createUser(t)

	resp := app.do(t, "GET", "/api/me", user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me domain.User
	decodeBody(t, resp, &me)
	assert.Equal(t, user.ID, me.ID)
	assert.Equal(t, user.Email, me.Email)

	// Without a token the whole /api tree is closed
	resp = app.do(t, "GET", "/api/me", testUser{}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
