package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession(t *testing.T) {
	t.Run("should create an active session with a unique id", func(t *testing.T) {
		s1 := New("alice")
		s2 := New("alice")

		assert.True(t, s1.Active())
		assert.Equal(t, "alice", s1.Account)
		assert.NotEmpty(t, s1.ID)
		assert.NotEqual(t, s1.ID, s2.ID)
	})

	t.Run("should report the zero value as inactive", func(t *testing.T) {
		var s Session
		assert.False(t, s.Active())
	})
}
