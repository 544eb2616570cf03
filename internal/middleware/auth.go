package middleware

import (
	"context"
	"net/http"

	"github.com/akielkucki/digitalmarketplace/internal/model"
)

type tokenVerifier interface {
	Verify(tokenString string) (*model.SessionClaims, error)
}

type cookieReader interface {
	Read(r *http.Request) (string, bool)
}

type contextKey string

const sessionClaimsContextKey contextKey = "session_claims"

// AuthMiddleware guards API routes. Authentication is cookie-based: the
// session token travels in the auth cookie, not in an Authorization header.
type AuthMiddleware struct {
	verifier tokenVerifier
	cookies  cookieReader
}

func NewAuthMiddleware(verifier tokenVerifier, cookies cookieReader) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, cookies: cookies}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := m.cookies.Read(r)
		if !ok {
			writeUnauthorized(w, "UNAUTHORIZED", "not authenticated")
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			writeUnauthorized(w, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), sessionClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows the request through when the session role ranks at
// least min in the role hierarchy. Must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(min model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
				return
			}

			if !claims.Role.AtLeast(min) {
				writeUnauthorized(w, "FORBIDDEN", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFromContext(ctx context.Context) (*model.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionClaimsContextKey).(*model.SessionClaims)
	return claims, ok
}

func writeUnauthorized(w http.ResponseWriter, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	if code == "FORBIDDEN" {
		w.WriteHeader(http.StatusForbidden)
	} else {
		w.WriteHeader(http.StatusUnauthorized)
	}

	_ = jsonEncode(w, model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
