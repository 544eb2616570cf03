package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/akielkucki/digitalmarketplace/internal/model"
	"github.com/akielkucki/digitalmarketplace/pkg/apierror"
)

// TokenCodec signs and verifies the compact session payload. Tokens are
// self-contained: once issued they stay valid until expiry, logout only
// removes the cookie.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenCodec(secret string, lifetime time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), lifetime: lifetime}
}

// Lifetime returns the configured token validity window.
func (c *TokenCodec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue signs a session token for the user. Expiry is issued-at plus the
// configured lifetime.
func (c *TokenCodec) Issue(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role.String(),
		"iat":   now.Unix(),
		"exp":   now.Add(c.lifetime).Unix(),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apierror.Internal("failed to sign session token")
	}
	return signed, nil
}

// Verify parses and checks a session token. Invalid signature, malformed
// structure and expiry all map to the same UNAUTHORIZED outcome so the
// caller cannot tell them apart; the underlying cause is logged at debug
// level only.
func (c *TokenCodec) Verify(tokenString string) (*model.SessionClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		slog.Debug("session token rejected", "error", err)
		return nil, invalidToken()
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, invalidToken()
	}

	sub, _ := claimsMap["sub"].(string)
	if sub == "" {
		return nil, invalidToken()
	}

	claims := &model.SessionClaims{UserID: sub}
	claims.Email, _ = claimsMap["email"].(string)

	roleStr, _ := claimsMap["role"].(string)
	role, known := model.ParseRole(roleStr)
	if !known {
		return nil, invalidToken()
	}
	claims.Role = role

	if iat, iatErr := claimsMap.GetIssuedAt(); iatErr == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, expErr := claimsMap.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}

func invalidToken() *apierror.APIError {
	return apierror.Unauthorized("invalid or expired token")
}
