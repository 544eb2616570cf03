package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akielkucki/digitalmarketplace/internal/auth"
	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/pkg/apierror"
)

// UserRepository is the persistence surface the auth core depends on.
// Implementations must report not-found distinctly from database failure.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
	List(ctx context.Context, page int, limit int) ([]model.User, int, error)
}

type AuthService struct {
	users UserRepository
	codec *auth.TokenCodec
}

func NewAuthService(users UserRepository, codec *auth.TokenCodec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// Signup creates a user with role "user" and issues a session token.
// Input is assumed validated; the email uniqueness race is resolved by the
// repository constraint and surfaces as a conflict.
func (s *AuthService) Signup(ctx context.Context, email string, password string, name string) (model.User, string, error) {
	email = strings.TrimSpace(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, "", apierror.Conflict("user with this email already exists", email)
	} else if !isNotFound(err) {
		return model.User{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, "", err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &hash,
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		user.Name = &trimmed
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return model.User{}, "", err
	}

	token, err := s.codec.Issue(created)
	if err != nil {
		return model.User{}, "", err
	}

	return created, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the same outcome so callers cannot probe for
// registered addresses.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if isNotFound(err) {
		return model.User{}, "", invalidCredentials()
	}
	if err != nil {
		return model.User{}, "", err
	}

	// OAuth-only accounts have no password hash and cannot log in here.
	if user.PasswordHash == nil || !auth.VerifyPassword(password, *user.PasswordHash) {
		return model.User{}, "", invalidCredentials()
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return model.User{}, "", err
	}

	return user, token, nil
}

// VerifyToken checks a session token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*model.SessionClaims, error) {
	return s.codec.Verify(tokenString)
}

// UserByID loads the user a verified token points at. Returns a not-found
// outcome when the user vanished after the token was issued.
func (s *AuthService) UserByID(ctx context.Context, id string) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListUsers returns a page of users in their public shape.
func (s *AuthService) ListUsers(ctx context.Context, page int, limit int) ([]model.PublicUser, model.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	users, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, model.Meta{}, err
	}

	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return out, model.Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

func invalidCredentials() *apierror.APIError {
	return apierror.Unauthorized("invalid email or password")
}

func isNotFound(err error) bool {
	var apiErr *apierror.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound
}
