package cli

import (
	"context"
	"time"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/logger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/resilience/retry"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"
)

// Autosaver persists the ledger after every mutating shell command, retried
// with backoff. It is best-effort: a failed autosave is logged and the shell
// keeps going, because losing an autosave must never lose the in-memory
// session. The ledger engine itself performs no retries; this lives entirely
// at the persistence boundary.
type Autosaver struct {
	snapshots snapshot.Service
	name      string
	retry     retry.Retry
}

// NewAutosaver creates an Autosaver writing to the given document name
// through the provided snapshot service.
func NewAutosaver(snapshots snapshot.Service, name string) *Autosaver {
	return &Autosaver{
		snapshots: snapshots,
		name:      name,
		retry: retry.New(
			retry.WithAttempts(3),
			retry.WithDelay(100*time.Millisecond),
			retry.WithMaxDelay(time.Second),
		),
	}
}

// persist saves the current ledger state. Safe to call on a nil receiver,
// which makes a disabled autosave a no-op at every call site.
func (a *Autosaver) persist(ctx context.Context) {
	if a == nil {
		return
	}

	err := a.retry.Execute(ctx, func() error {
		return a.snapshots.Save(ctx, a.name)
	})
	if err != nil {
		logger.Warn(ctx, "autosave failed",
			"snapshot.name", a.name,
			"error", err,
		)
	}
}
