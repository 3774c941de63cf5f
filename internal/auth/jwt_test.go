package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAdminJWT(t *testing.T) {
	secret := []byte("test-jwt-secret")

	token, expiresAt, err := GenerateAdminJWT(secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	assert.NoError(t, ValidateAdminJWT(token, secret))
}

func TestValidateAdminJWTWrongSecret(t *testing.T) {
	token, _, err := GenerateAdminJWT([]byte("secret-a"))
	require.NoError(t, err)

	assert.Error(t, ValidateAdminJWT(token, []byte("secret-b")))
}

func TestValidateAdminJWTGarbage(t *testing.T) {
	assert.Error(t, ValidateAdminJWT("not.a.token", []byte("secret")))
	assert.Error(t, ValidateAdminJWT("", []byte("secret")))
}

func TestValidateAdminJWTExpired(t *testing.T) {
	secret := []byte("test-jwt-secret")
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	assert.Error(t, ValidateAdminJWT(token, secret))
}

func TestValidateAdminJWTRejectsUnsignedAlg(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(time.Minute).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Error(t, ValidateAdminJWT(token, []byte("secret")))
}
