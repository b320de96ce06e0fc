package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	issued, err := GenerateJWT("user-1", "alice", "alice@example.com", "manager", "secret", time.Hour, "test")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, time.Second)

	claims, err := ParseAndValidateJWT(issued.Token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "manager", claims.Role)
	assert.Equal(t, issued.JTI, claims.ID)
}

func TestParseJWT_Rejections(t *testing.T) {
	issued, err := GenerateJWT("user-1", "alice", "a@example.com", "user", "secret", time.Hour, "test")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(issued.Token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT("user-1", "alice", "a@example.com", "user", "secret", -time.Minute, "test")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired.Token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
