package ledger

import (
	"testing"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/validation"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Balance(t *testing.T) {
	validation.Init()

	t.Run("should derive balances from confirmed transactions", func(t *testing.T) {
		ctx := t.Context()
		s := New(WithDifficulty(1), WithReward(1))
		require.NoError(t, s.CreateAccount(ctx, "alice"))
		require.NoError(t, s.CreateAccount(ctx, "bob"))
		alice := session.New("alice")

		require.NoError(t, s.Faucet(ctx, alice, 50))
		_, err := s.Mine(ctx, alice)
		require.NoError(t, err)

		require.NoError(t, s.SubmitTransaction(ctx, alice, "bob", 10, ""))
		_, err = s.Mine(ctx, alice)
		require.NoError(t, err)

		// alice: +50 faucet, +1 reward, -10 send, +1 reward = 42
		balance, err := s.Balance(ctx, "alice", false)
		require.NoError(t, err)
		assert.Equal(t, int64(42), balance)

		balance, err = s.Balance(ctx, "bob", false)
		require.NoError(t, err)
		assert.Equal(t, int64(10), balance)
	})

	t.Run("should include pending effects on request", func(t *testing.T) {
		ctx := t.Context()
		s := New(WithDifficulty(1), WithReward(0))
		alice := fundedAccount(t, s, "alice", 50)
		require.NoError(t, s.CreateAccount(ctx, "bob"))

		require.NoError(t, s.SubmitTransaction(ctx, alice, "bob", 10, ""))

		confirmed, err := s.Balance(ctx, "alice", false)
		require.NoError(t, err)
		assert.Equal(t, int64(50), confirmed)

		projected, err := s.Balance(ctx, "alice", true)
		require.NoError(t, err)
		assert.Equal(t, int64(40), projected)

		projected, err = s.Balance(ctx, "bob", true)
		require.NoError(t, err)
		assert.Equal(t, int64(10), projected)
	})

	t.Run("should never debit SYSTEM for mints", func(t *testing.T) {
		ctx := t.Context()
		s := New(WithDifficulty(1), WithReward(10))
		require.NoError(t, s.CreateAccount(ctx, "alice"))
		alice := session.New("alice")

		require.NoError(t, s.Faucet(ctx, alice, 500))
		_, err := s.Mine(ctx, alice)
		require.NoError(t, err)

		balance, err := s.Balance(ctx, SystemAccount, false)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("should allow querying the reserved accounts", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		_, err := s.Balance(ctx, SystemAccount, false)
		require.NoError(t, err)

		_, err = s.Balance(ctx, GenesisAccount, false)
		require.NoError(t, err)
	})

	t.Run("should reject an unknown account", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		_, err := s.Balance(ctx, "nobody", false)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownAccount)
	})

	t.Run("should report zero for a fresh account", func(t *testing.T) {
		ctx := t.Context()
		s := New()
		require.NoError(t, s.CreateAccount(ctx, "alice"))

		balance, err := s.Balance(ctx, "alice", false)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}
