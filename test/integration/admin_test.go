//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminGet(t *testing.T, env *testEnv, path string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, env.server.URL+path, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestUserListRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, nil)

	// Anonymous gets 401.
	anon := adminGet(t, env, "/api/users", nil)
	assert.Equal(t, http.StatusUnauthorized, anon.StatusCode)

	// A regular user gets 403.
	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "user@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)

	member := adminGet(t, env, "/api/users", sessionCookie(signup))
	require.Equal(t, http.StatusForbidden, member.StatusCode)

	parsed := decodeResponse(t, member)
	require.NotNil(t, parsed.Error)
	assert.Equal(t, "FORBIDDEN", parsed.Error.Code)
}

func TestUserListAsAdmin(t *testing.T) {
	env := newTestEnv(t, nil)

	email, password := seedAdmin(t, env)
	cookie := login(t, env, email, password)

	for i, member := range []string{"a@b.com", "c@d.com"} {
		resp := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
			"email":    member,
			"password": "Passw0rd1",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "signup %d", i)
	}

	resp := adminGet(t, env, "/api/users?page=1&limit=50", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	require.True(t, parsed.Success)
	require.NotNil(t, parsed.Meta)
	assert.Equal(t, 3, parsed.Meta.Total)

	var users []struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &users))
	assert.Len(t, users, 3)
}

func TestAuditTrailRecordsAuthEvents(t *testing.T) {
	env := newTestEnv(t, nil)

	adminEmail, adminPassword := seedAdmin(t, env)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)

	badLogin := postJSON(t, env.server.URL+"/api/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "WrongPass1",
	})
	require.Equal(t, http.StatusUnauthorized, badLogin.StatusCode)

	cookie := login(t, env, adminEmail, adminPassword)

	resp := adminGet(t, env, "/api/audit", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	require.True(t, parsed.Success)

	var entries []struct {
		Action string `json:"action"`
		Status string `json:"status"`
		Actor  struct {
			Email string `json:"email"`
		} `json:"actor"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &entries))
	require.Len(t, entries, 3)

	// Newest first: admin login, failed login, signup.
	assert.Equal(t, "auth.login", entries[0].Action)
	assert.Equal(t, "success", entries[0].Status)
	assert.Equal(t, adminEmail, entries[0].Actor.Email)

	assert.Equal(t, "auth.login", entries[1].Action)
	assert.Equal(t, "failure", entries[1].Status)

	assert.Equal(t, "auth.signup", entries[2].Action)
	assert.Equal(t, "success", entries[2].Status)
}

func TestAuditFilterByAction(t *testing.T) {
	env := newTestEnv(t, nil)

	adminEmail, adminPassword := seedAdmin(t, env)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)

	cookie := login(t, env, adminEmail, adminPassword)

	resp := adminGet(t, env, "/api/audit?action=auth.signup", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	parsed := decodeResponse(t, resp)
	var entries []struct {
		Action string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(parsed.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "auth.signup", entries[0].Action)
}
