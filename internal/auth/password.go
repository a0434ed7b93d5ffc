// Package auth provides password hashing and cookie-session resolution for
// the organizer. The plaintext password exists only transiently on the stack
// of these functions; everything else sees the bcrypt hash.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"personal-organizer/internal/errs"
)

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", errs.Validationf("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
