package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims embeds the registered claims plus the account id.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateSessionToken issues an HS256 session token for a logged-in user.
func GenerateSessionToken(userID string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID: userID,
	})
	return token.SignedString(secretKey)
}

// UserIDFromSessionToken validates a token and returns the account id.
func UserIDFromSessionToken(tokenString string, secretKey []byte) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
