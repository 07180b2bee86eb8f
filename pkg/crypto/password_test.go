package crypto

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pasta")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pasta", hash)

	assert.True(t, CheckPassword("s3cret-pasta", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPassword_Error(t *testing.T) {
	orig := bcryptGenerateFromPassword
	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	defer func() { bcryptGenerateFromPassword = orig }()

	_, err := HashPassword("x")
	assert.Error(t, err)
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(12)
	require.NoError(t, err)
	assert.Len(t, token, 24)

	other, err := GenerateRandomToken(12)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateRandomToken_Error(t *testing.T) {
	orig := randomRead
	randomRead = func([]byte) (int, error) { return 0, errors.New("no entropy") }
	defer func() { randomRead = orig }()

	_, err := GenerateRandomToken(12)
	assert.Error(t, err)
}

func TestGenerateApiKey(t *testing.T) {
	key, err := GenerateApiKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, ApiKeyPrefix))
	assert.Len(t, key, len(ApiKeyPrefix)+24)
}

func TestHashApiKey_Deterministic(t *testing.T) {
	h1 := HashApiKey("KEY_abc")
	h2 := HashApiKey("KEY_abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashApiKey("KEY_abd"))
}
