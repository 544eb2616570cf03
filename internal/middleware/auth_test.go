package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akielkucki/digitalmarketplace/internal/auth"
	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/internal/session"
)

func newTestAuth(t *testing.T, role model.Role) (*AuthMiddleware, *http.Cookie) {
	t.Helper()

	codec := auth.NewTokenCodec("test-secret", time.Hour)
	cookies := session.New("auth-token", time.Hour, false)

	token, err := codec.Issue(model.User{ID: "user-1", Email: "a@b.co", Role: role})
	require.NoError(t, err)

	return NewAuthMiddleware(codec, cookies), &http.Cookie{Name: "auth-token", Value: token}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthWithoutCookie(t *testing.T) {
	mw, _ := newTestAuth(t, model.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthWithBadToken(t *testing.T) {
	mw, _ := newTestAuth(t, model.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth-token", Value: "garbage"})
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthSetsClaims(t *testing.T) {
	mw, cookie := newTestAuth(t, model.RoleUser)

	var got *model.SessionClaims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	mw.RequireAuth(inner).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, model.RoleUser, got.Role)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		min  model.Role
		want int
	}{
		{"user blocked from admin", model.RoleUser, model.RoleAdmin, http.StatusForbidden},
		{"moderator blocked from admin", model.RoleModerator, model.RoleAdmin, http.StatusForbidden},
		{"admin allowed", model.RoleAdmin, model.RoleAdmin, http.StatusOK},
		{"admin passes lower bar", model.RoleAdmin, model.RoleModerator, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, cookie := newTestAuth(t, tt.role)

			handler := mw.RequireAuth(mw.RequireRole(tt.min)(okHandler()))
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	mw, _ := newTestAuth(t, model.RoleAdmin)

	// RequireRole without RequireAuth has no claims to inspect.
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	mw.RequireRole(model.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
