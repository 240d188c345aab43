package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	raw, err := NewToken(testSecret, "ana@example.com", 42, "ORGANIZER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	assert.True(t, ValidateToken(testSecret, raw, "ana@example.com"))

	email, err := ExtractEmail(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", email)

	uid, err := ExtractUserID(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)

	role, err := ExtractRole(testSecret, raw)
	require.NoError(t, err)
	assert.Equal(t, "ORGANIZER", role)
}

func TestValidateTokenSubjectMismatch(t *testing.T) {
	raw, err := NewToken(testSecret, "ana@example.com", 42, "ORGANIZER", 15)
	require.NoError(t, err)

	assert.False(t, ValidateToken(testSecret, raw, "someone-else@example.com"))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	raw, err := NewToken("other-secret", "ana@example.com", 42, "ORGANIZER", 15)
	require.NoError(t, err)

	assert.False(t, ValidateToken(testSecret, raw, "ana@example.com"))
}

func TestValidateTokenExpired(t *testing.T) {
	// Negative TTL puts exp in the past.
	raw, err := NewToken(testSecret, "ana@example.com", 42, "ORGANIZER", -1)
	require.NoError(t, err)

	assert.False(t, ValidateToken(testSecret, raw, "ana@example.com"))
}

func TestValidateTokenMalformed(t *testing.T) {
	assert.False(t, ValidateToken(testSecret, "not-a-token", "ana@example.com"))
	assert.False(t, ValidateToken(testSecret, "", "ana@example.com"))
}

func TestExtractFailsClosedOnGarbage(t *testing.T) {
	_, err := ExtractEmail(testSecret, "garbage")
	assert.ErrorIs(t, err, ErrTokenDecode)

	_, err = ExtractUserID(testSecret, "garbage")
	assert.ErrorIs(t, err, ErrTokenDecode)

	_, err = ExtractRole(testSecret, "garbage")
	assert.ErrorIs(t, err, ErrTokenDecode)
}
