package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("testpass123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", hashed)
	assert.True(t, CheckPassword("testpass123", hashed))
	assert.False(t, CheckPassword("wrong", hashed))
}

func TestNewID_UniqueAndParsable(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		_, dup := seen[id]
		assert.False(t, dup, "id %s generated twice", id)
		seen[id] = struct{}{}
	}
}
