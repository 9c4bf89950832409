package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken(42, "user@example.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.Sub)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewToken(1, "user@example.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := NewToken(1, "user@example.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret")
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	_, err := Parse("not-a-token", "secret")
	assert.Error(t, err)
}
