package cli

import (
	"context"
	"strconv"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// inspectCommand returns the CLI command that loads a save file and prints a
// summary of its state: chain height, settings, balances, and pending count.
//
// Usage example:
//
//	minichain inspect --file ledger.json
func inspectCommand(led ledger.Service, saves snapshot.Service) *cli.Command {
	return &cli.Command{
		Name:        "inspect",
		Description: "Loads a save file and prints chain height, settings, account balances, and pending transactions.",
		Usage:       "Read-only summary of a save file.",
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

			pterm.DefaultSection.Println(name)
			pterm.Info.Printfln("Blocks: %d  Pending: %d  Difficulty: %d  Reward: %d",
				len(led.ChainView(ctx, 0)),
				len(led.ListPending(ctx)),
				led.Difficulty(ctx),
				led.Reward(ctx),
			)

			rows := pterm.TableData{{"Account", "Confirmed", "With Pending"}}
			for _, account := range led.ListAccounts(ctx) {
				confirmed, err := led.Balance(ctx, account, false)
				if err != nil {
					return err
				}

				spendable, err := led.Balance(ctx, account, true)
				if err != nil {
					return err
				}

				rows = append(rows, []string{
					account,
					strconv.FormatInt(confirmed, 10),
					strconv.FormatInt(spendable, 10),
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}
}
