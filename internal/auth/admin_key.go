package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashAdminKey hashes an admin key for storage in configuration.
func HashAdminKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAdminKey checks a presented bearer token against the configured
// admin key. A bcrypt hash takes precedence over the plaintext key; with
// neither configured, nothing passes.
func VerifyAdminKey(presented, plainKey, keyHash string) bool {
	if presented == "" {
		return false
	}
	if keyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(presented)) == nil
	}
	if plainKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(plainKey)) == 1
}
