package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/types"
)

// Snapshot is a deep copy of the full ledger state, used by the persistence
// codec. It carries the known account set explicitly because accounts may
// exist with no transactions at all.
type Snapshot struct {
	Difficulty int
	Reward     int64
	Accounts   []string
	Blocks     []Block
	Pending    []Transaction
}

// Snapshot exports a deep copy of the ledger state. Accounts are sorted so
// repeated snapshots of the same state are structurally identical.
func (s *service) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.accounts.ToSlice()
	sort.Strings(accounts)

	blocks := make([]Block, 0, len(s.blocks))
	for _, b := range s.blocks {
		blocks = append(blocks, copyBlock(b))
	}

	pending := make([]Transaction, len(s.pending))
	copy(pending, s.pending)

	return Snapshot{
		Difficulty: s.difficulty,
		Reward:     s.reward,
		Accounts:   accounts,
		Blocks:     blocks,
		Pending:    pending,
	}
}

// Restore replaces the ledger state with the snapshot's. The reconstructed
// chain is validated first, and every pending transaction must reference
// known accounts with a positive amount; on any failure the current state is
// left untouched and the error wraps ErrChainCorruption or
// ErrInvalidTransaction respectively.
func (s *service) Restore(ctx context.Context, snap Snapshot) error {
	if err := validateChain(snap.Blocks); err != nil {
		return err
	}

	if snap.Difficulty < 0 || snap.Reward < 0 {
		return fmt.Errorf("%w: negative difficulty or reward", ErrChainCorruption)
	}

	accounts := types.NewSet(snap.Accounts...)
	for _, tx := range snap.Pending {
		if tx.Amount <= 0 {
			return fmt.Errorf("%w: pending transaction with non-positive amount", ErrInvalidTransaction)
		}
		if tx.Sender != SystemAccount && !accounts.Contains(tx.Sender) {
			return fmt.Errorf("%w: pending sender %q", ErrUnknownAccount, tx.Sender)
		}
		if tx.Recipient != GenesisAccount && !accounts.Contains(tx.Recipient) {
			return fmt.Errorf("%w: pending recipient %q", ErrUnknownAccount, tx.Recipient)
		}
	}

	blocks := make([]Block, 0, len(snap.Blocks))
	for _, b := range snap.Blocks {
		blocks = append(blocks, copyBlock(b))
	}

	pending := make([]Transaction, len(snap.Pending))
	copy(pending, snap.Pending)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blocks = blocks
	s.pending = pending
	s.accounts = accounts
	s.difficulty = min(snap.Difficulty, MaxDifficulty)
	s.reward = snap.Reward

	return nil
}
