package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/logger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"
)

// ErrMiningCanceled is returned when the proof-of-work search is aborted by
// context cancellation. The drained transactions are restored to the mempool.
var ErrMiningCanceled = errors.New("mining canceled")

// Mine drains the mempool into a new block and performs the proof-of-work
// search: starting from nonce 0, the nonce is incremented and the content
// hash recomputed until it has at least the configured number of leading
// zero hex characters. The search has no upper bound on iterations; it
// terminates probabilistically, which for teaching difficulties (2 or 3) is
// near-instant.
//
// When the mining reward is positive, a synthetic SYSTEM to miner reward
// transaction is appended as the final entry of the batch. An empty mempool
// with a zero reward still produces a valid empty block.
//
// The whole operation holds the state lock, so no reader can observe the
// mempool mid-drain or the block half-appended.
func (s *service) Mine(ctx context.Context, sess session.Session) (Block, error) {
	if !sess.Active() {
		return Block{}, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.accounts.Contains(sess.Account) {
		return Block{}, fmt.Errorf("%w: miner %q", ErrUnknownAccount, sess.Account)
	}

	drained := s.drainLocked()

	batch := drained
	if s.reward > 0 {
		reward := Transaction{
			Sender:    SystemAccount,
			Recipient: sess.Account,
			Amount:    s.reward,
			Note:      "Mining reward",
			Timestamp: s.now().UTC().Unix(),
		}
		batch = append(batch, reward)
	}

	tip := s.blocks[len(s.blocks)-1]
	block := Block{
		Index:        len(s.blocks),
		Timestamp:    s.now().UTC().Unix(),
		Transactions: batch,
		PreviousHash: tip.Hash,
		Nonce:        0,
		Difficulty:   s.difficulty,
	}

	block.Hash = hashBlockContent(block.Index, block.Timestamp, block.Transactions, block.PreviousHash, block.Nonce)
	for !hashMeetsDifficulty(block.Hash, block.Difficulty) {
		if err := ctx.Err(); err != nil {
			// Put the user transactions back; the synthetic reward is dropped.
			s.pending = append(drained, s.pending...)
			return Block{}, errors.Join(ErrMiningCanceled, err)
		}

		block.Nonce++
		block.Hash = hashBlockContent(block.Index, block.Timestamp, block.Transactions, block.PreviousHash, block.Nonce)
	}

	s.blocks = append(s.blocks, block)

	logger.Info(ctx, "block mined",
		"block.index", block.Index,
		"block.hash", block.Hash,
		"block.nonce", block.Nonce,
		"block.transactions", len(block.Transactions),
		"miner", sess.Account,
	)

	return copyBlock(block), nil
}
