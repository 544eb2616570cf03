//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akielkucki/digitalmarketplace/internal/auth"
	"github.com/akielkucki/digitalmarketplace/internal/config"
	"github.com/akielkucki/digitalmarketplace/internal/handler"
	"github.com/akielkucki/digitalmarketplace/internal/middleware"
	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/internal/repository"
	"github.com/akielkucki/digitalmarketplace/internal/router"
	"github.com/akielkucki/digitalmarketplace/internal/service"
	"github.com/akielkucki/digitalmarketplace/internal/session"
)

const testCookieName = "auth-token"

type testEnv struct {
	server *httptest.Server
	users  *repository.MemoryUserRepository
	audit  *repository.MemoryAuditRepository
}

// newTestEnv wires the real router, middleware and handlers over in-memory
// repositories, plus a stub guilds upstream.
func newTestEnv(t *testing.T, guildsUpstream http.HandlerFunc) *testEnv {
	t.Helper()

	if guildsUpstream == nil {
		guildsUpstream = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/guilds" {
			http.NotFound(w, r)
			return
		}
		guildsUpstream(w, r)
	}))
	t.Cleanup(upstream.Close)

	return newTestEnvWithGuildsURL(t, upstream.URL)
}

// newTestEnvWithGuildsURL wires the stack against an arbitrary guilds
// backend address, reachable or not.
func newTestEnvWithGuildsURL(t *testing.T, guildsURL string) *testEnv {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	auditRepo := repository.NewMemoryAuditRepository()

	codec := auth.NewTokenCodec("test-secret", time.Hour)
	cookies := session.New(testCookieName, time.Hour, false)

	authService := service.NewAuthService(users, codec)
	auditService := service.NewAuditService(auditRepo)

	authMiddleware := middleware.NewAuthMiddleware(codec, cookies)
	gate := middleware.NewAuthGate(codec, cookies)

	cfg := &config.Config{
		ServerPort:       "3000",
		RequestTimeout:   30 * time.Second,
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     1000,
		AuthRateLimitRPM: 1000,
		GuildsAPIURL:     guildsURL,
	}

	appRouter := router.New(cfg, authMiddleware, gate, router.Handlers{
		Auth:   handler.NewAuthHandler(authService, cookies, auditService),
		User:   handler.NewUserHandler(authService),
		Audit:  handler.NewAuditHandler(auditService),
		Guilds: handler.NewGuildsHandler(cfg.GuildsAPIURL),
		Pages:  handler.NewPageHandler(),
	}, nil)

	server := httptest.NewServer(appRouter)
	t.Cleanup(server.Close)

	return &testEnv{server: server, users: users, audit: auditRepo}
}

// noRedirectClient returns a client that surfaces 3xx responses instead of
// following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type apiResponse struct {
	Success bool `json:"success"`
	User    *struct {
		ID        string  `json:"id"`
		Email     string  `json:"email"`
		Name      *string `json:"name"`
		Role      string  `json:"role"`
		CreatedAt string  `json:"createdAt"`
	} `json:"user"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

// seedAdmin creates an admin account directly in the repository and
// returns its credentials.
func seedAdmin(t *testing.T, env *testEnv) (string, string) {
	t.Helper()

	const email = "admin@devmarket.io"
	const password = "AdminPass1"

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	now := time.Now().UTC()
	_, err = env.users.Create(context.Background(), model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	return email, password
}

// login signs in and returns the session cookie.
func login(t *testing.T, env *testEnv, email string, password string) *http.Cookie {
	t.Helper()

	resp := postJSON(t, env.server.URL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	return cookie
}
