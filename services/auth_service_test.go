package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	token, err := GenerateSessionToken("user-123", secret, time.Hour)
	require.NoError(t, err)

	userID, err := UserIDFromSessionToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestSessionToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := GenerateSessionToken("u1", secret, -1*time.Second)
	require.NoError(t, err)

	_, err = UserIDFromSessionToken(token, secret)
	assert.Error(t, err)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateSessionToken("u1", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromSessionToken(token, []byte("wrong"))
	assert.Error(t, err)
}
