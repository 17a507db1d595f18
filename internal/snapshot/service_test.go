package snapshot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/logger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/validation"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init(logger.WithLevel("error")) // Use error level to reduce test output
}

// memoryStorage is an in-memory Storage backend for tests.
type memoryStorage struct {
	documents map[string][]byte
	writeErr  error
	readErr   error
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{documents: make(map[string][]byte)}
}

func (m *memoryStorage) WriteDocument(ctx context.Context, name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}

	m.documents[name] = data
	return nil
}

func (m *memoryStorage) ReadDocument(ctx context.Context, name string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}

	data, ok := m.documents[name]
	if !ok {
		return nil, errors.New("no such document")
	}

	return data, nil
}

// populatedLedger builds a ledger with two accounts, confirmed funds, and one
// pending transfer.
func populatedLedger(t *testing.T) ledger.Service {
	t.Helper()
	validation.Init()
	ctx := t.Context()

	led := ledger.New(ledger.WithDifficulty(1), ledger.WithReward(5))
	require.NoError(t, led.CreateAccount(ctx, "alice"))
	require.NoError(t, led.CreateAccount(ctx, "bob"))
	alice := session.New("alice")

	require.NoError(t, led.Faucet(ctx, alice, 50))
	_, err := led.Mine(ctx, alice)
	require.NoError(t, err)

	require.NoError(t, led.SubmitTransaction(ctx, alice, "bob", 10, "held"))

	return led
}

func TestService_Save(t *testing.T) {
	t.Run("should write the encoded document under the given name", func(t *testing.T) {
		ctx := t.Context()
		led := populatedLedger(t)
		storage := newMemoryStorage()
		s := New(led, storage)

		require.NoError(t, s.Save(ctx, "ledger.json"))

		data, ok := storage.documents["ledger.json"]
		require.True(t, ok)
		assert.Contains(t, string(data), `"mining_reward": 5`)
		assert.Contains(t, string(data), `"alice"`)
	})

	t.Run("should surface storage write failures", func(t *testing.T) {
		ctx := t.Context()
		led := populatedLedger(t)
		storage := newMemoryStorage()
		storage.writeErr = errors.New("disk full")
		s := New(led, storage)

		err := s.Save(ctx, "ledger.json")
		require.Error(t, err)
		assert.Equal(t, storage.writeErr, err)
	})
}

func TestService_Load(t *testing.T) {
	t.Run("should restore a saved ledger into a fresh one with matching balances", func(t *testing.T) {
		ctx := t.Context()
		source := populatedLedger(t)
		storage := newMemoryStorage()
		require.NoError(t, New(source, storage).Save(ctx, "ledger.json"))

		target := ledger.New()
		require.NoError(t, New(target, storage).Load(ctx, "ledger.json"))

		require.NoError(t, target.Validate(ctx))
		assert.Equal(t, source.ListAccounts(ctx), target.ListAccounts(ctx))
		assert.Equal(t, source.ListPending(ctx), target.ListPending(ctx))
		assert.Equal(t, source.Difficulty(ctx), target.Difficulty(ctx))
		assert.Equal(t, source.Reward(ctx), target.Reward(ctx))

		for _, account := range source.ListAccounts(ctx) {
			want, err := source.Balance(ctx, account, false)
			require.NoError(t, err)

			got, err := target.Balance(ctx, account, false)
			require.NoError(t, err)
			assert.Equal(t, want, got, "balance mismatch for %q", account)
		}
	})

	t.Run("should surface storage read failures", func(t *testing.T) {
		ctx := t.Context()
		storage := newMemoryStorage()
		storage.readErr = errors.New("io failure")
		s := New(ledger.New(), storage)

		err := s.Load(ctx, "ledger.json")
		require.Error(t, err)
		assert.Equal(t, storage.readErr, err)
	})

	t.Run("should reject a malformed document and leave the ledger untouched", func(t *testing.T) {
		ctx := t.Context()
		storage := newMemoryStorage()
		storage.documents["ledger.json"] = []byte("{not json")

		led := ledger.New()
		require.NoError(t, led.CreateAccount(ctx, "alice"))

		err := New(led, storage).Load(ctx, "ledger.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptSaveFile)
		assert.True(t, led.ResolveAccount(ctx, "alice"))
	})

	t.Run("should reject a document whose chain fails validation", func(t *testing.T) {
		ctx := t.Context()
		source := populatedLedger(t)
		storage := newMemoryStorage()
		require.NoError(t, New(source, storage).Save(ctx, "ledger.json"))

		// Corrupt a confirmed amount in the stored document.
		tampered := string(storage.documents["ledger.json"])
		require.Contains(t, tampered, `"amount": 50`)
		storage.documents["ledger.json"] = []byte(strings.Replace(tampered, `"amount": 50`, `"amount": 9999`, 1))

		err := New(ledger.New(), storage).Load(ctx, "ledger.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCorruptSaveFile)
		assert.ErrorIs(t, err, ledger.ErrChainCorruption)
	})
}
