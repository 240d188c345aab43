package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // minimal cost keeps the test fast
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", "s3cret"))
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// An out-of-range cost must not fail registration; the hash falls
	// back to the bcrypt default and still verifies.
	hash, err := HashPassword("s3cret", -1)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "s3cret"))
}
