package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	SetSecret("test-secret")
	t.Cleanup(func() { SetSecret(defaultSecret) })

	token, err := Sign(1, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.AdminID)
}

func TestParseExpired(t *testing.T) {
	SetSecret("test-secret")
	t.Cleanup(func() { SetSecret(defaultSecret) })

	token, err := Sign(1, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	assert.Error(t, err)
}

func TestParseWrongSecret(t *testing.T) {
	SetSecret("secret-a")
	token, err := Sign(1, time.Hour)
	require.NoError(t, err)

	SetSecret("secret-b")
	t.Cleanup(func() { SetSecret(defaultSecret) })

	_, err = Parse(token)
	assert.Error(t, err)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-token")
	assert.Error(t, err)
}
