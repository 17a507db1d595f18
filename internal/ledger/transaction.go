package ledger

import (
	"errors"
	"time"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/validation"
)

const (
	// SystemAccount is the reserved issuance account. It is the sender of
	// faucet mints and mining rewards and is never debited: every transfer
	// it originates creates new units instead of moving existing ones.
	SystemAccount = "SYSTEM"

	// GenesisAccount is the reserved recipient of the genesis marker
	// transaction. No user account may take this name.
	GenesisAccount = "GENESIS"
)

var (
	// ErrInvalidTransaction is returned when a submitted transaction violates
	// a structural rule, such as a non-positive amount.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrInsufficientFunds is returned when solvency enforcement is active and
	// the sender's spendable balance cannot cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Transaction is a value-transfer record. It is pending while it sits in the
// mempool and confirmed once a mined block includes it; confirmed
// transactions are immutable.
//
// The json tags double as the canonical field order for block hashing and
// for the persisted document layout.
type Transaction struct {
	Sender    string `json:"sender"    validate:"required"` // Source account, or SYSTEM for mints
	Recipient string `json:"recipient" validate:"required"` // Destination account
	Amount    int64  `json:"amount"    validate:"gt=0"`     // Transferred units, always positive
	Note      string `json:"note"`                          // Optional free text
	Timestamp int64  `json:"timestamp" validate:"required"` // Creation time, Unix seconds UTC
}

// buildTransaction constructs and validates a Transaction. It returns an
// error wrapping ErrInvalidTransaction if any structural rule is violated.
func buildTransaction(sender, recipient string, amount int64, note string, at time.Time) (Transaction, error) {
	tx := Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Note:      note,
		Timestamp: at.Unix(),
	}

	if err := validation.Validate(tx); err != nil {
		return Transaction{}, errors.Join(ErrInvalidTransaction, err)
	}

	return tx, nil
}
