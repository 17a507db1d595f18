package ledger

import (
	"context"
	"fmt"
)

// Balance derives an account's balance by scanning all confirmed
// transactions: credits where the account is the recipient, debits where it
// is the sender. SYSTEM is exempt from the debit side entirely, so mints
// never decrement it. With includePending, pending mempool effects are
// applied on top, answering "what would my balance be after the next mine".
//
// The scan is a pure function of chain state. No memoization: a teaching
// session's chain is a handful of blocks.
func (s *service) Balance(ctx context.Context, name string, includePending bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != SystemAccount && name != GenesisAccount && !s.accounts.Contains(name) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAccount, name)
	}

	balance := s.confirmedBalanceLocked(name)
	if includePending {
		balance += applyTransactions(name, s.pending)
	}

	return balance, nil
}

// confirmedBalanceLocked sums the account's deltas over all confirmed
// transactions. The caller must hold s.mu.
func (s *service) confirmedBalanceLocked(name string) int64 {
	var balance int64
	for _, b := range s.blocks {
		balance += applyTransactions(name, b.Transactions)
	}

	return balance
}

// spendableBalanceLocked is the balance available for new transfers:
// confirmed funds minus pending debits. Pending credits do not count until
// they are mined. The caller must hold s.mu.
func (s *service) spendableBalanceLocked(name string) int64 {
	balance := s.confirmedBalanceLocked(name)
	for _, tx := range s.pending {
		if tx.Sender == name {
			balance -= tx.Amount
		}
	}

	return balance
}

// applyTransactions returns the net delta the given transactions apply to
// the named account. SYSTEM never accrues debits.
func applyTransactions(name string, txs []Transaction) int64 {
	var delta int64
	for _, tx := range txs {
		if tx.Recipient == name {
			delta += tx.Amount
		}
		if tx.Sender == name && name != SystemAccount {
			delta -= tx.Amount
		}
	}

	return delta
}
