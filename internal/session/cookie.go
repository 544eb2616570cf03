// Package session reads and writes the session token cookie. The store
// only mutates response headers; it must run before the response body is
// written.
package session

import (
	"net/http"
	"time"
)

const DefaultCookieName = "auth-token"

type Store struct {
	name   string
	maxAge time.Duration
	secure bool
}

// New builds a cookie store. maxAge should equal the token lifetime so the
// cookie and the token expire together; secure should be true in
// production deployments.
func New(name string, maxAge time.Duration, secure bool) *Store {
	if name == "" {
		name = DefaultCookieName
	}
	return &Store{name: name, maxAge: maxAge, secure: secure}
}

func (s *Store) Name() string {
	return s.name
}

// Set writes the session cookie: HttpOnly, SameSite=Lax, Path=/.
func (s *Store) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		MaxAge:   int(s.maxAge.Seconds()),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear deletes the session cookie on the client. The token itself stays
// valid until expiry; there is no server-side revocation.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the session token carried by the request, if any.
func (s *Store) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
