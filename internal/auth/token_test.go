package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", map[string]any{"userId": int64(42), "tenant": "hq"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, float64(42), claims["userId"])
	assert.Equal(t, "hq", claims["tenant"])
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := newTestManager()
	other := NewTokenManager("different-secret", time.Hour, 7*24*time.Hour)

	token, err := tm.IssueAccessToken("alice", 1)
	require.NoError(t, err)

	claims, err := other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestParseRejectsGarbage(t *testing.T) {
	tm := newTestManager()

	_, err := tm.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseDoesNotCheckExpiry(t *testing.T) {
	tm := newTestManager()

	token, err := tm.Issue("alice", map[string]any{"userId": int64(1)}, -time.Minute)
	require.NoError(t, err)

	// Parsing an expired token succeeds; expiry is an explicit separate step.
	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])

	assert.True(t, tm.IsExpired(token))
	assert.False(t, tm.Validate(token, "alice"))
}

func TestValidateChecksSubjectAndExpiry(t *testing.T) {
	tm := newTestManager()

	token, err := tm.IssueAccessToken("alice", 1)
	require.NoError(t, err)

	assert.True(t, tm.Validate(token, "alice"))
	assert.False(t, tm.Validate(token, "bob"))
	assert.False(t, tm.Validate("garbage", "alice"))
}

func TestExtractHelpers(t *testing.T) {
	tm := newTestManager()

	token, err := tm.IssueAccessToken("alice", 42)
	require.NoError(t, err)

	username, err := tm.ExtractUsername(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	userID, err := tm.ExtractUserID(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	exp, err := tm.ExtractExpiration(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	_, err = tm.ExtractClaim(token, "no_such_claim")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenCarriesTypeClaim(t *testing.T) {
	tm := newTestManager()

	access, err := tm.IssueAccessToken("alice", 1)
	require.NoError(t, err)
	refresh, err := tm.IssueRefreshToken("alice", 1)
	require.NoError(t, err)

	assert.False(t, tm.IsRefreshToken(access))
	assert.True(t, tm.IsRefreshToken(refresh))

	exp, err := tm.ExtractExpiration(refresh)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, 5*time.Second)
}

func TestIsExpiredOnUnparseableToken(t *testing.T) {
	tm := newTestManager()
	assert.True(t, tm.IsExpired("garbage"))
}
