package model

import "time"

// User is the persisted user record. PasswordHash is nil for accounts
// created through an OAuth provider.
type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Name         *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the JSON shape returned to clients. It never carries the
// password hash.
type PublicUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      *string    `json:"name"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Public returns the client-safe view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// PublicWithUpdated is Public plus the updated timestamp, used by /api/auth/me.
func (u User) PublicWithUpdated() PublicUser {
	p := u.Public()
	updated := u.UpdatedAt
	p.UpdatedAt = &updated
	return p
}

// SessionClaims is the decoded session token payload. Immutable once
// issued; a session changes only by issuing a new token.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
