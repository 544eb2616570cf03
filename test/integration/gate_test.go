//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedPageRedirectsAnonymous(t *testing.T) {
	env := newTestEnv(t, nil)
	client := noRedirectClient()

	for _, path := range []string{"/dashboard", "/profile", "/settings"} {
		t.Run(path, func(t *testing.T) {
			resp, err := client.Get(env.server.URL + path)
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })

			require.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/login?redirect="+url.QueryEscape(path), resp.Header.Get("Location"))
		})
	}
}

func TestProtectedPageRedirectPreservesQuery(t *testing.T) {
	env := newTestEnv(t, nil)
	client := noRedirectClient()

	resp, err := client.Get(env.server.URL + "/settings?tab=billing")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fsettings%3Ftab%3Dbilling", resp.Header.Get("Location"))
}

func TestProtectedPageAllowsSession(t *testing.T) {
	env := newTestEnv(t, nil)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)
	cookie := sessionCookie(signup)
	require.NotNil(t, cookie)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthPageRedirectsAuthenticated(t *testing.T) {
	env := newTestEnv(t, nil)

	signup := postJSON(t, env.server.URL+"/api/auth/signup", map[string]string{
		"email":    "a@b.com",
		"password": "Passw0rd1",
	})
	require.Equal(t, http.StatusOK, signup.StatusCode)
	cookie := sessionCookie(signup)
	require.NotNil(t, cookie)

	for _, path := range []string{"/login", "/signup"} {
		t.Run(path, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, env.server.URL+path, nil)
			require.NoError(t, err)
			req.AddCookie(cookie)

			resp, err := noRedirectClient().Do(req)
			require.NoError(t, err)
			t.Cleanup(func() { _ = resp.Body.Close() })

			require.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
		})
	}
}

func TestAuthPageServesAnonymous(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, err := noRedirectClient().Get(env.server.URL + "/login")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGarbageCookieTreatedAsAnonymous(t *testing.T) {
	env := newTestEnv(t, nil)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-a-jwt"})

	resp, err := noRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fdashboard", resp.Header.Get("Location"))
}

func TestLandingPageIsPublic(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, err := noRedirectClient().Get(env.server.URL + "/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
