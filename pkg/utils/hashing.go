package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashSyncToken hashes a pre-shared admin token for storage in the
// environment (SYNC_TOKEN_HASH). Run once at provisioning time.
func HashSyncToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), 10)
	return string(bytes), err
}

// CompareSyncToken checks a presented token against the stored bcrypt hash.
func CompareSyncToken(hashedToken string, plainToken string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(plainToken))
}

func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
