package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.NoError(t, h.Compare(hash, "s3cret"))
	require.Error(t, h.Compare(hash, "wrong"))
}

func TestBcryptHasher_SamePasswordDifferentHashes(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("s3cret")
	require.NoError(t, err)
	h2, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2) // salted
}

func TestBcryptHasher_ZeroCostFallsBackToDefault(t *testing.T) {
	h := NewBcryptHasher(0)
	require.Equal(t, bcrypt.DefaultCost, h.cost)
}
