package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/types"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"
)

// MaxDifficulty bounds the proof-of-work difficulty accepted at runtime.
// Six leading zero hex characters is already minutes of search on a laptop;
// anything above that defeats the interactive teaching loop.
const MaxDifficulty = 6

var (
	// ErrNoSession is returned when an operation requiring an acting account
	// is called without a logged-in session.
	ErrNoSession = errors.New("no active session")

	// ErrInvalidDifficulty is returned when setting a difficulty outside
	// [0, MaxDifficulty].
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidReward is returned when setting a negative mining reward.
	ErrInvalidReward = errors.New("invalid mining reward")
)

// Service is the ledger engine API consumed by the shell and the persistence
// codec. It owns the chain, the mempool, and the account registry; no caller
// mutates that state except through these methods.
//
// All methods are safe for concurrent use. The shell is synchronous, but the
// compound operations (mempool drain plus block append inside Mine, state
// swap inside Restore) must appear atomic to any reader, so the
// implementation serializes every operation behind a single mutex.
type Service interface {
	// CreateAccount registers a new account name. Names are trimmed; empty,
	// reserved (SYSTEM, GENESIS), and duplicate names are rejected.
	CreateAccount(ctx context.Context, name string) error

	// ResolveAccount reports whether the given account name is registered.
	ResolveAccount(ctx context.Context, name string) bool

	// ListAccounts returns all registered account names in sorted order.
	ListAccounts(ctx context.Context) []string

	// SubmitTransaction adds a pending transfer from the session's account.
	// It fails with ErrNoSession, ErrUnknownAccount, ErrInvalidTransaction,
	// or ErrInsufficientFunds (when solvency enforcement is active).
	SubmitTransaction(ctx context.Context, sess session.Session, recipient string, amount int64, note string) error

	// Faucet mints new units from SYSTEM to the session's account. The mint
	// is one-sided: SYSTEM is never debited.
	Faucet(ctx context.Context, sess session.Session, amount int64) error

	// ListPending returns a snapshot of the mempool in insertion order.
	ListPending(ctx context.Context) []Transaction

	// Mine drains the mempool into a new block, appends the mining reward
	// (when the reward is positive), performs the proof-of-work search, and
	// appends the block to the chain. Canceling ctx aborts the search and
	// restores the drained transactions to the mempool.
	Mine(ctx context.Context, sess session.Session) (Block, error)

	// Difficulty returns the proof-of-work difficulty applied to new blocks.
	Difficulty(ctx context.Context) int

	// SetDifficulty changes the difficulty applied to new blocks. Blocks
	// already mined keep the difficulty they record.
	SetDifficulty(ctx context.Context, n int) error

	// Reward returns the mining reward credited to miners.
	Reward(ctx context.Context) int64

	// SetReward changes the mining reward. A zero reward disables the
	// synthetic reward transaction entirely.
	SetReward(ctx context.Context, amount int64) error

	// Balance derives the balance of an account from confirmed transactions;
	// includePending additionally applies pending credits and debits.
	Balance(ctx context.Context, name string, includePending bool) (int64, error)

	// ChainView returns deep copies of the last n blocks, oldest first.
	// n <= 0 returns the full chain.
	ChainView(ctx context.Context, n int) []Block

	// Validate walks the chain from genesis and verifies content hashes,
	// per-block proof-of-work targets, and previous-hash linkage. The first
	// violation is reported with its block index, wrapping ErrChainCorruption.
	Validate(ctx context.Context) error

	// Snapshot exports a deep copy of the full ledger state for persistence.
	Snapshot(ctx context.Context) Snapshot

	// Restore replaces the ledger state with the given snapshot after
	// validating the reconstructed chain. On failure the current state is
	// left untouched.
	Restore(ctx context.Context, snap Snapshot) error
}

// service is the concrete implementation of the Service interface.
type service struct {
	mu sync.Mutex

	blocks   []Block
	pending  []Transaction
	accounts types.Set[string]

	difficulty      int
	reward          int64
	enforceSolvency bool

	now func() time.Time
}

// Ensure compile-time compliance with the Service interface.
var _ Service = (*service)(nil)

// config holds construction-time settings for the ledger.
type config struct {
	difficulty      int
	reward          int64
	enforceSolvency bool
	now             func() time.Time
}

// Option configures the ledger before construction.
type Option func(*config)

// WithDifficulty sets the initial proof-of-work difficulty.
// Values outside [0, MaxDifficulty] are clamped.
func WithDifficulty(n int) Option {
	return func(c *config) {
		c.difficulty = min(max(n, 0), MaxDifficulty)
	}
}

// WithReward sets the initial mining reward. Negative values are treated as zero.
func WithReward(amount int64) Option {
	return func(c *config) {
		c.reward = max(amount, 0)
	}
}

// WithSolvencyEnforcement controls whether SubmitTransaction requires the
// sender's spendable balance (confirmed minus pending debits) to cover the
// transfer. Enforcement is on by default; disabling it allows accounts to go
// negative, which some lessons use on purpose.
func WithSolvencyEnforcement(enabled bool) Option {
	return func(c *config) {
		c.enforceSolvency = enabled
	}
}

// WithClock overrides the time source used for transaction and block
// timestamps. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// New creates a ledger holding only the genesis block, an empty mempool, and
// no registered accounts.
func New(opts ...Option) *service {
	cfg := config{
		difficulty:      2,
		reward:          10,
		enforceSolvency: true,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		blocks:          []Block{newGenesisBlock(cfg.now().UTC())},
		pending:         make([]Transaction, 0),
		accounts:        types.NewSet[string](),
		difficulty:      cfg.difficulty,
		reward:          cfg.reward,
		enforceSolvency: cfg.enforceSolvency,
		now:             cfg.now,
	}
}

// Difficulty returns the proof-of-work difficulty applied to new blocks.
func (s *service) Difficulty(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.difficulty
}

// SetDifficulty changes the difficulty applied to new blocks.
func (s *service) SetDifficulty(ctx context.Context, n int) error {
	if n < 0 || n > MaxDifficulty {
		return ErrInvalidDifficulty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.difficulty = n
	return nil
}

// Reward returns the mining reward credited to miners.
func (s *service) Reward(ctx context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.reward
}

// SetReward changes the mining reward.
func (s *service) SetReward(ctx context.Context, amount int64) error {
	if amount < 0 {
		return ErrInvalidReward
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reward = amount
	return nil
}

// ChainView returns deep copies of the last n blocks, oldest first.
func (s *service) ChainView(ctx context.Context, n int) []Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if n > 0 && n < len(s.blocks) {
		start = len(s.blocks) - n
	}

	view := make([]Block, 0, len(s.blocks)-start)
	for _, b := range s.blocks[start:] {
		view = append(view, copyBlock(b))
	}

	return view
}
