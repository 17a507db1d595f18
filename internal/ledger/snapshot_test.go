package ledger

import (
	"testing"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Snapshot(t *testing.T) {
	validation.Init()

	t.Run("should export the full ledger state", func(t *testing.T) {
		ctx := t.Context()
		s := New(WithDifficulty(1), WithReward(5))
		alice := fundedAccount(t, s, "alice", 50)
		require.NoError(t, s.CreateAccount(ctx, "bob"))
		require.NoError(t, s.SubmitTransaction(ctx, alice, "bob", 10, "held"))

		snap := s.Snapshot(ctx)

		assert.Equal(t, 1, snap.Difficulty)
		assert.Equal(t, int64(5), snap.Reward)
		assert.Equal(t, []string{"alice", "alice-funder", "bob"}, snap.Accounts)
		assert.Len(t, snap.Blocks, 2)
		require.Len(t, snap.Pending, 1)
		assert.Equal(t, "held", snap.Pending[0].Note)
	})

	t.Run("should return copies detached from internal state", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		snap := s.Snapshot(ctx)
		snap.Blocks[0].Transactions[0].Amount = 999

		require.NoError(t, s.Validate(ctx))
	})
}

func TestService_Restore(t *testing.T) {
	validation.Init()

	t.Run("should replace the ledger state with the snapshot", func(t *testing.T) {
		ctx := t.Context()
		source := New(WithDifficulty(1), WithReward(5))
		alice := fundedAccount(t, source, "alice", 50)
		require.NoError(t, source.CreateAccount(ctx, "bob"))
		require.NoError(t, source.SubmitTransaction(ctx, alice, "bob", 10, ""))

		target := New()
		require.NoError(t, target.Restore(ctx, source.Snapshot(ctx)))

		assert.Equal(t, source.ListAccounts(ctx), target.ListAccounts(ctx))
		assert.Equal(t, source.ListPending(ctx), target.ListPending(ctx))
		assert.Equal(t, source.Difficulty(ctx), target.Difficulty(ctx))
		assert.Equal(t, source.Reward(ctx), target.Reward(ctx))
		require.NoError(t, target.Validate(ctx))

		sourceBalance, err := source.Balance(ctx, "alice", false)
		require.NoError(t, err)
		targetBalance, err := target.Balance(ctx, "alice", false)
		require.NoError(t, err)
		assert.Equal(t, sourceBalance, targetBalance)
	})

	t.Run("should reject a corrupt chain and keep the current state", func(t *testing.T) {
		ctx := t.Context()
		s := New()
		require.NoError(t, s.CreateAccount(ctx, "alice"))

		snap := s.Snapshot(ctx)
		snap.Blocks[0].Hash = "not-a-real-hash"

		err := s.Restore(ctx, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChainCorruption)

		// Untouched: alice is still registered and the chain still validates.
		assert.True(t, s.ResolveAccount(ctx, "alice"))
		require.NoError(t, s.Validate(ctx))
	})

	t.Run("should reject a pending transaction referencing an unknown account", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		snap := s.Snapshot(ctx)
		snap.Pending = []Transaction{{Sender: "ghost", Recipient: "ghost", Amount: 5, Timestamp: 1}}

		err := s.Restore(ctx, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownAccount)
	})

	t.Run("should reject a pending transaction with a non-positive amount", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		snap := s.Snapshot(ctx)
		snap.Accounts = []string{"alice"}
		snap.Pending = []Transaction{{Sender: SystemAccount, Recipient: "alice", Amount: 0, Timestamp: 1}}

		err := s.Restore(ctx, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTransaction)
	})

	t.Run("should reject negative settings", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		snap := s.Snapshot(ctx)
		snap.Reward = -1

		err := s.Restore(ctx, snap)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChainCorruption)
	})

	t.Run("should clamp a difficulty above the runtime maximum", func(t *testing.T) {
		ctx := t.Context()
		s := New()

		snap := s.Snapshot(ctx)
		snap.Difficulty = MaxDifficulty + 3

		require.NoError(t, s.Restore(ctx, snap))
		assert.Equal(t, MaxDifficulty, s.Difficulty(ctx))
	})
}
