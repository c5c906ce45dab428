package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12
)

var (
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	randomRead                 = rand.Read
)

// HashAdminKey hashes an admin API key using bcrypt
func HashAdminKey(key string) (string, error) {
	bytes, err := bcryptGenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin key: %w", err)
	}
	return string(bytes), nil
}

// CheckAdminKey compares a presented admin API key with a stored bcrypt hash
func CheckAdminKey(key, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	return err == nil
}

// GenerateAdminKey generates a random admin API key of the given byte length
func GenerateAdminKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := randomRead(bytes); err != nil {
		return "", fmt.Errorf("failed to generate admin key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
