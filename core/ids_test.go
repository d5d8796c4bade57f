package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("CarriesPrefix", func(t *testing.T) {
		id := NewID("srv")
		assert.True(t, strings.HasPrefix(id, "srv_"))
		assert.True(t, IsValidULID(id))
	})

	t.Run("UniqueAcrossCalls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID("chb")
			require.False(t, seen[id], "duplicate id generated: %s", id)
			seen[id] = true
		}
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID(NewID("srv")))
	assert.False(t, IsValidULID("srv_not-a-ulid"))
	assert.False(t, IsValidULID("missing-underscore"))
	assert.False(t, IsValidULID(""))
}
