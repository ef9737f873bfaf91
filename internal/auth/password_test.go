package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
	assert.False(t, VerifyPassword("not-a-hash", "secret1"))
}
