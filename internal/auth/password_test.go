package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("pw1", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "pw1", hash)

	assert.True(t, VerifyPassword("pw1", hash))
	assert.False(t, VerifyPassword("pw2", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("pw1", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("pw1", ""))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("pw1", 4)
	require.NoError(t, err)
	second, err := HashPassword("pw1", 4)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
