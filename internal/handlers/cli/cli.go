package cli

import (
	"context"
	"os"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the minichain CLI application.
//
// It registers all available commands, including:
//
//   - `shell`: Starts the interactive ledger shell.
//   - `verify`: Loads a save file and validates the chain.
//   - `inspect`: Loads a save file and prints a summary.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - led: The ledger service implementation backing every command.
//   - saves: The snapshot service bound to save-file storage.
//   - autosaver: Optional best-effort autosave hook; may be nil.
func Run(ctx context.Context, led ledger.Service, saves snapshot.Service, autosaver *Autosaver) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "minichain",
		Description:           "Interactive teaching tool simulating a minimal blockchain ledger.",
		Usage:                 "minichain [command] [flags]",
		Commands: []*cli.Command{
			shellCommand(led, saves, autosaver),
			verifyCommand(led, saves),
			inspectCommand(led, saves),
		},
	}

	return app.Run(ctx, os.Args)
}
