package ledger

import (
	"context"
	"fmt"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"
)

// SubmitTransaction adds a pending transfer from the session's account.
func (s *service) SubmitTransaction(ctx context.Context, sess session.Session, recipient string, amount int64, note string) error {
	if !sess.Active() {
		return ErrNoSession
	}

	tx, err := buildTransaction(sess.Account, recipient, amount, note, s.now().UTC())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enqueueLocked(tx)
}

// Faucet mints new units from SYSTEM to the session's account. The mint is
// one-sided: SYSTEM is never debited, modeling an unlimited issuance source.
func (s *service) Faucet(ctx context.Context, sess session.Session, amount int64) error {
	if !sess.Active() {
		return ErrNoSession
	}

	tx, err := buildTransaction(SystemAccount, sess.Account, amount, "Faucet", s.now().UTC())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enqueueLocked(tx)
}

// ListPending returns a snapshot of the mempool in insertion order.
func (s *service) ListPending(ctx context.Context) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, len(s.pending))
	copy(out, s.pending)

	return out
}

// enqueueLocked validates account references and solvency, then appends the
// transaction to the mempool. The caller must hold s.mu.
func (s *service) enqueueLocked(tx Transaction) error {
	if tx.Sender != SystemAccount && !s.accounts.Contains(tx.Sender) {
		return fmt.Errorf("%w: sender %q", ErrUnknownAccount, tx.Sender)
	}
	if tx.Recipient != GenesisAccount && !s.accounts.Contains(tx.Recipient) {
		return fmt.Errorf("%w: recipient %q", ErrUnknownAccount, tx.Recipient)
	}

	// Spendable balance counts pending debits, so two pending sends cannot
	// spend the same confirmed funds.
	if s.enforceSolvency && tx.Sender != SystemAccount {
		if spendable := s.spendableBalanceLocked(tx.Sender); spendable < tx.Amount {
			return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, tx.Sender, spendable, tx.Amount)
		}
	}

	s.pending = append(s.pending, tx)
	return nil
}

// drainLocked removes and returns all pending transactions. Only Mine may
// call it, so a transaction is never pending and confirmed at the same time.
// The caller must hold s.mu.
func (s *service) drainLocked() []Transaction {
	drained := s.pending
	s.pending = make([]Transaction, 0)

	return drained
}
