package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed; changing it only affects newly created hashes.
const bcryptCost = 12

// HashPassword derives a salted one-way hash of plaintext. The plaintext
// is never logged or returned; failures surface as internal errors, not
// validation errors.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash. The comparison is
// constant-time, delegated to bcrypt.
func VerifyPassword(plaintext string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
