//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie, "signup must set the session cookie")
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	parsed := decodeResponse(t, resp)
	assert.True(t, parsed.Success)
	require.NotNil(t, parsed.User)
	assert.Equal(t, "a@b.com", parsed.User.Email)
	assert.Equal(t, "user", parsed.User.Role)
	assert.NotEmpty(t, parsed.User.ID)

	// Repeating the same signup conflicts.
	dup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusConflict, dup.StatusCode)

	dupParsed := decodeResponse(t, dup)
	assert.False(t, dupParsed.Success)
	require.NotNil(t, dupParsed.Error)
	assert.Equal(t, "ALREADY_EXISTS", dupParsed.Error.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "password": "Passw0rd1"}},
		{"short password", map[string]string{"email": "a@b.com", "password": "short"}},
		{"no uppercase", map[string]string{"email": "a@b.com", "password": "longenough1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, env.server.URL+"/api/auth/signup", tt.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			parsed := decodeResponse(t, resp)
			assert.False(t, parsed.Success)
			require.NotNil(t, parsed.Error)
			assert.NotEmpty(t, parsed.Error.Message)
			assert.Nil(t, sessionCookie(resp))
		})
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)

	// Wrong password: 401, no cookie.
	bad := postJSON(t, env.server.URL+"/api/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "WrongPass1",
	})
	require.Equal(t, http.StatusUnauthorized, bad.StatusCode)
	assert.Nil(t, sessionCookie(bad))

	cookie := login(t, env, "a@b.com", "Passw0rd1")

	// The cookie authenticates /api/auth/me.
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	me, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = me.Body.Close() })
	require.Equal(t, http.StatusOK, me.StatusCode)

	parsed := decodeResponse(t, me)
	require.NotNil(t, parsed.User)
	assert.Equal(t, "a@b.com", parsed.User.Email)
}

func TestMeWithoutSession(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, err := http.Get(env.server.URL + "/api/auth/me")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeUserVanished(t *testing.T) {
	env := newTestEnv(t, nil)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)
	cookie := sessionCookie(signup)
	require.NotNil(t, cookie)

	parsed := decodeResponse(t, signup)
	env.users.Delete(parsed.User.ID)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/auth/me", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	// Token is still valid but the user is gone.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)

	resp := postJSON(t, env.server.URL+"/api/auth/logout", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
