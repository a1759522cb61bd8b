package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashLegacyKnownDigest(t *testing.T) {
	// Digest must match what the legacy system stored for the same password.
	assert.Equal(t, "482c811da5d5b4bc6d497ffa98491e38", HashLegacy("password123"))
}

func TestVerifyLegacyDigest(t *testing.T) {
	stored := HashLegacy("password123")

	assert.NoError(t, Verify(stored, "password123"))
	assert.ErrorIs(t, Verify(stored, "wrong"), ErrPasswordMismatch)

	// Old rows sometimes carry uppercase hex.
	assert.NoError(t, Verify(strings.ToUpper(stored), "password123"))
}

func TestVerifyBcrypt(t *testing.T) {
	stored, err := HashBcrypt("password123")
	require.NoError(t, err)

	assert.NoError(t, Verify(stored, "password123"))
	assert.ErrorIs(t, Verify(stored, "wrong"), ErrPasswordMismatch)
}
