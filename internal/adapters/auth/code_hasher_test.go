package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptCodeHasher(t *testing.T) {
	h := NewBcryptCodeHasher(bcrypt.MinCost)

	hash, err := h.Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	require.NoError(t, h.Compare(hash, "123456"))
	require.Error(t, h.Compare(hash, "654321"))
}
