package jwthelper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "user-123", "test-agent", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test-agent", claims.UserAgent)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken([]byte("key-one"), "user-123", "test-agent", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken([]byte("key-two"), token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, "user-123", "test-agent", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(key, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken([]byte("key"), "not-a-token")
	assert.Error(t, err)
}
