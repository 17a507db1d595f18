package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	t.Run("should succeed on the first attempt", func(t *testing.T) {
		r := New(WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry until the operation succeeds", func(t *testing.T) {
		r := New(WithAttempts(5), WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient failure")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should return the last error once attempts are exhausted", func(t *testing.T) {
		r := New(WithAttempts(2), WithDelay(time.Millisecond), WithMaxDelay(time.Millisecond))

		expectedErr := errors.New("persistent failure")
		calls := 0
		err := r.Execute(t.Context(), func() error {
			calls++
			return expectedErr
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 2, calls)
	})
}
