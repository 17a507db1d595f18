package cli

import (
	"context"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// verifyCommand returns the CLI command that loads a save file and re-verifies
// every block in it, without entering the interactive shell.
//
// Usage example:
//
//	minichain verify --file ledger.json
func verifyCommand(led ledger.Service, saves snapshot.Service) *cli.Command {
	return &cli.Command{
		Name:        "verify",
		Description: "Loads a save file and validates the full chain: hashes, linkage, and proof-of-work.",
		Usage:       "Exits non-zero when the chain is corrupt.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the save file",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.String("file")

			if err := saves.Load(ctx, name); err != nil {
				return err
			}

			if err := led.Validate(ctx); err != nil {
				return err
			}

			height := len(led.ChainView(ctx, 0))
			pterm.Success.Printfln("%s: chain of %d blocks is valid.", name, height)
			return nil
		},
	}
}
