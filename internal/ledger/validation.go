package ledger

import (
	"context"
	"errors"
	"fmt"
)

// ErrChainCorruption is returned when chain validation finds a block whose
// stored hash, proof-of-work target, or linkage does not hold.
var ErrChainCorruption = errors.New("chain corruption")

// Validate walks the chain from genesis forward and verifies every block.
// The first violation is reported with its block index.
func (s *service) Validate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return validateChain(s.blocks)
}

// validateChain checks, for each block: index continuity, that the
// recomputed content hash equals the stored hash, that the stored hash meets
// the difficulty recorded for that block (genesis records 0 and is exempt),
// and that previous_hash links to the prior block's hash.
func validateChain(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: chain has no genesis block", ErrChainCorruption)
	}

	for i, b := range blocks {
		if b.Index != i {
			return fmt.Errorf("%w: block %d: stored index %d out of sequence", ErrChainCorruption, i, b.Index)
		}

		recomputed := hashBlockContent(b.Index, b.Timestamp, b.Transactions, b.PreviousHash, b.Nonce)
		if recomputed != b.Hash {
			return fmt.Errorf("%w: block %d: stored hash does not match content", ErrChainCorruption, i)
		}

		if !hashMeetsDifficulty(b.Hash, b.Difficulty) {
			return fmt.Errorf("%w: block %d: hash does not meet difficulty %d", ErrChainCorruption, i, b.Difficulty)
		}

		if i == 0 {
			if b.PreviousHash != genesisPreviousHash {
				return fmt.Errorf("%w: block 0: genesis previous hash is not the zero sentinel", ErrChainCorruption)
			}
			continue
		}

		if b.PreviousHash != blocks[i-1].Hash {
			return fmt.Errorf("%w: block %d: previous hash does not link to block %d", ErrChainCorruption, i, i-1)
		}
	}

	return nil
}
