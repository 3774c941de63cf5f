package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const adminTokenLifetime = 15 * time.Minute

// GenerateAdminJWT creates a short-lived admin session token. The admin
// dashboard exchanges the admin key for one of these so the key itself is
// not replayed on every request.
func GenerateAdminJWT(secret []byte) (string, int64, error) {
	expirationTime := time.Now().Add(adminTokenLifetime).Unix()
	claims := jwt.MapClaims{
		"sub": "admin",
		"exp": expirationTime,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", 0, err
	}
	return signedToken, expirationTime, nil
}

// ValidateAdminJWT verifies an admin session token.
func ValidateAdminJWT(tokenString string, secret []byte) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
