package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("should create a set from initial elements", func(t *testing.T) {
		s := NewSet("alice", "bob", "alice")
		assert.Len(t, s, 2)
		assert.True(t, s.Contains("alice"))
		assert.True(t, s.Contains("bob"))
	})

	t.Run("should add and delete elements in place", func(t *testing.T) {
		s := NewSet[string]()
		s.Add("alice", "bob")
		assert.True(t, s.Contains("alice"))

		s.Delete("alice")
		assert.False(t, s.Contains("alice"))
		assert.True(t, s.Contains("bob"))
	})

	t.Run("should report absence for unknown elements", func(t *testing.T) {
		s := NewSet("alice")
		assert.False(t, s.Contains("mallory"))
	})

	t.Run("should convert to a slice with all elements", func(t *testing.T) {
		s := NewSet(1, 2, 3)
		assert.ElementsMatch(t, []int{1, 2, 3}, s.ToSlice())
	})
}
