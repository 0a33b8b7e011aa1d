package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hashed, err := h.Hash("s3cret!")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret!", hashed)
	assert.True(t, h.Compare(hashed, "s3cret!"))
	assert.False(t, h.Compare(hashed, "S3cret!"))
	assert.False(t, h.Compare("not-a-hash", "s3cret!"))

	again, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salted")
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hashed, err := BcryptHasher{}.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
