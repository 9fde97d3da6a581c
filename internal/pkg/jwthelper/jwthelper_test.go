package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, "admin@example.com", "admin", time.Now())
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_Rejects(t *testing.T) {
	key := []byte("signing-key")

	expired, err := GenerateToken(key, "admin@example.com", "admin", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	_, err = ParseToken(key, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := GenerateToken(key, "admin@example.com", "admin", time.Now())
	require.NoError(t, err)
	_, err = ParseToken([]byte("other-key"), valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(key, none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(key, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
