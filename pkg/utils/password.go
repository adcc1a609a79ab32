package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// Bounds accepted for the configured bcrypt work factor.
const (
	MinBcryptCost = bcrypt.MinCost
	MaxBcryptCost = bcrypt.MaxCost
)

// HashPassword hashes the plaintext with bcrypt at the given cost. A cost
// outside bcrypt's accepted range falls back to the library default.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		cost = bcrypt.DefaultCost
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPassword reports whether the plaintext matches the stored hash.
// A malformed hash verifies false rather than surfacing an error, so the
// caller cannot distinguish a bad record from a wrong password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
