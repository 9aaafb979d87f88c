package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "test-secret"
	userID := "user-123"

	tokenString, err := GenerateJWT(userID, secret, time.Hour, "payflow-backend")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseAndValidateJWT(tokenString, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "payflow-backend", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT("user-123", "right-secret", time.Hour, "payflow-backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(tokenString, "wrong-secret")
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	tokenString, err := GenerateJWT("user-123", "secret", -time.Minute, "payflow-backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(tokenString, "secret")
	assert.Error(t, err)
}

func TestRefreshTokenHashRoundTrip(t *testing.T) {
	token, err := GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 bytes hex encoded

	hash := HashRefreshToken(token)
	assert.NotEqual(t, token, hash)
	assert.True(t, CompareRefreshTokenHash(token, hash))
	assert.False(t, CompareRefreshTokenHash("tampered", hash))
}

func TestGenerateSecureRandomString_InvalidLength(t *testing.T) {
	_, err := GenerateSecureRandomString(0)
	assert.Error(t, err)
}
