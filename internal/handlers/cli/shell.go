package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/session"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v3"
)

// shellCommand returns the CLI command that starts the interactive ledger
// shell, the main way the tool is used in a classroom.
//
// Usage example:
//
//	minichain shell
func shellCommand(led ledger.Service, saves snapshot.Service, autosaver *Autosaver) *cli.Command {
	return &cli.Command{
		Name:        "shell",
		Description: "Starts the interactive ledger shell: create accounts, submit transfers, mine blocks, and inspect the chain.",
		Usage:       "Runs the read-eval-print loop until 'exit'.",
		Action: func(ctx context.Context, c *cli.Command) error {
			sh := newShell(led, saves, autosaver)
			return sh.run(ctx)
		},
	}
}

// shell holds the interactive loop's state: the wired services and the
// current login. The logged-in user is a session value owned here; the
// ledger only ever sees it as an explicit argument.
type shell struct {
	ledger    ledger.Service
	saves     snapshot.Service
	autosaver *Autosaver
	current   session.Session
}

func newShell(led ledger.Service, saves snapshot.Service, autosaver *Autosaver) *shell {
	return &shell{
		ledger:    led,
		saves:     saves,
		autosaver: autosaver,
	}
}

// run executes the read-eval-print loop until the user exits or input fails.
func (sh *shell) run(ctx context.Context) error {
	pterm.DefaultBasicText.Println("minichain ledger shell. Type 'help' for commands.")

	for {
		line, err := pterm.DefaultInteractiveTextInput.WithDefaultText(sh.prompt()).Show()
		if err != nil {
			return err
		}

		if sh.handle(ctx, strings.TrimSpace(line)) {
			return nil
		}
	}
}

// prompt labels the input with the logged-in account.
func (sh *shell) prompt() string {
	if sh.current.Active() {
		return sh.current.Account
	}
	return "guest"
}

// handle dispatches a single input line. It returns true when the shell
// should terminate.
func (sh *shell) handle(ctx context.Context, line string) bool {
	if line == "" {
		return false
	}

	fields := strings.Fields(line)
	command, args := strings.ToLower(fields[0]), fields[1:]

	switch command {
	case "exit", "quit":
		return true
	case "help":
		sh.printHelp()
	case "create_user":
		sh.createUser(ctx, args)
	case "users":
		sh.listUsers(ctx)
	case "login":
		sh.login(ctx, args)
	case "logout":
		sh.current = session.Session{}
		pterm.Info.Println("Logged out.")
	case "whoami":
		sh.whoami()
	case "faucet":
		sh.faucet(ctx, args)
	case "send":
		sh.send(ctx, args)
	case "pending":
		sh.listPending(ctx)
	case "mine":
		sh.mine(ctx)
	case "difficulty":
		sh.difficulty(ctx, args)
	case "reward":
		sh.reward(ctx, args)
	case "balance":
		sh.balance(ctx, args)
	case "chain":
		sh.chain(ctx, args)
	case "validate":
		sh.validate(ctx)
	case "save":
		sh.save(ctx, args)
	case "load":
		sh.load(ctx, args)
	default:
		pterm.Error.Printfln("Unknown command %q. Type 'help' for a list.", command)
	}

	return false
}

func (sh *shell) printHelp() {
	pterm.DefaultBasicText.Println(`Commands:
  create_user <name>            Create a new account
  users                         List accounts
  login <name>                  Login as an account
  logout                        Logout
  whoami                        Show the logged-in account
  faucet <amount>               Mint coins from SYSTEM to yourself
  send <to> <amount> [note...]  Create a pending payment
  pending                       Show pending transactions
  mine                          Mine a block (confirms pending + reward)
  difficulty [n]                Get or set proof-of-work difficulty (0-6)
  reward [amount]               Get or set the mining reward
  balance [name] [pending]      Show a balance; 'pending' includes mempool effects
  chain [n]                     Show the last n blocks, or the whole chain
  validate                      Re-verify every block in the chain
  save <file.json>              Save the ledger to a file
  load <file.json>              Load the ledger from a file
  exit / quit                   Leave the shell`)
}

func (sh *shell) createUser(ctx context.Context, args []string) {
	if len(args) != 1 {
		pterm.Error.Println("Usage: create_user <name>")
		return
	}

	if err := sh.ledger.CreateAccount(ctx, args[0]); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Account %q created.", args[0])
	sh.autosaver.persist(ctx)
}

func (sh *shell) listUsers(ctx context.Context) {
	accounts := sh.ledger.ListAccounts(ctx)
	if len(accounts) == 0 {
		pterm.Info.Println("(no accounts)")
		return
	}

	pterm.Info.Println("Accounts: " + strings.Join(accounts, ", "))
}

func (sh *shell) login(ctx context.Context, args []string) {
	if len(args) != 1 {
		pterm.Error.Println("Usage: login <name>")
		return
	}

	if !sh.ledger.ResolveAccount(ctx, args[0]) {
		pterm.Error.Printfln("Unknown account %q. Create it first with create_user.", args[0])
		return
	}

	sh.current = session.New(args[0])
	pterm.Success.Printfln("Logged in as %q.", args[0])
}

func (sh *shell) whoami() {
	if !sh.current.Active() {
		pterm.Info.Println("(not logged in)")
		return
	}
	pterm.Info.Println(sh.current.Account)
}

func (sh *shell) faucet(ctx context.Context, args []string) {
	if len(args) != 1 {
		pterm.Error.Println("Usage: faucet <amount>")
		return
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	if err := sh.ledger.Faucet(ctx, sh.current, amount); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Added faucet of %d to %s. Use 'mine' to confirm.", amount, sh.current.Account)
	sh.autosaver.persist(ctx)
}

func (sh *shell) send(ctx context.Context, args []string) {
	if len(args) < 2 {
		pterm.Error.Println("Usage: send <to> <amount> [note...]")
		return
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	note := strings.Join(args[2:], " ")

	if err := sh.ledger.SubmitTransaction(ctx, sh.current, args[0], amount, note); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Added payment of %d from %s to %s. Use 'mine' to confirm.", amount, sh.current.Account, args[0])
	sh.autosaver.persist(ctx)
}

func (sh *shell) listPending(ctx context.Context) {
	pending := sh.ledger.ListPending(ctx)
	if len(pending) == 0 {
		pterm.Info.Println("(no pending transactions)")
		return
	}

	for i, tx := range pending {
		pterm.Info.Printfln("%d. %s -> %s : %d  %s", i+1, tx.Sender, tx.Recipient, tx.Amount, tx.Note)
	}
}

func (sh *shell) mine(ctx context.Context) {
	spinner, _ := pterm.DefaultSpinner.Start("Mining...")

	block, err := sh.ledger.Mine(ctx, sh.current)
	if err != nil {
		spinner.Fail()
		pterm.Error.Println(err)
		return
	}

	spinner.Success()
	pterm.Success.Printfln("Mined block #%d with %d transactions. Hash: %s...", block.Index, len(block.Transactions), block.Hash[:16])
	sh.autosaver.persist(ctx)
}

func (sh *shell) difficulty(ctx context.Context, args []string) {
	if len(args) == 0 {
		pterm.Info.Printfln("Current difficulty: %d", sh.ledger.Difficulty(ctx))
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		pterm.Error.Println("Usage: difficulty [n]")
		return
	}

	if err := sh.ledger.SetDifficulty(ctx, n); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Difficulty set to %d.", n)
	sh.autosaver.persist(ctx)
}

func (sh *shell) reward(ctx context.Context, args []string) {
	if len(args) == 0 {
		pterm.Info.Printfln("Current mining reward: %d", sh.ledger.Reward(ctx))
		return
	}

	amount, err := parseAmount(args[0])
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	if err := sh.ledger.SetReward(ctx, amount); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Mining reward set to %d.", amount)
	sh.autosaver.persist(ctx)
}

func (sh *shell) balance(ctx context.Context, args []string) {
	name := sh.current.Account
	includePending := false

	for _, arg := range args {
		if strings.EqualFold(arg, "pending") {
			includePending = true
			continue
		}
		name = arg
	}

	if name == "" {
		pterm.Error.Println("Usage: balance [name] [pending]  (default: current account)")
		return
	}

	balance, err := sh.ledger.Balance(ctx, name, includePending)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Info.Printfln("%s balance: %d", name, balance)
}

func (sh *shell) chain(ctx context.Context, args []string) {
	n := 0
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			pterm.Error.Println("Usage: chain [n]")
			return
		}
		n = parsed
	}

	for _, block := range sh.ledger.ChainView(ctx, n) {
		renderBlock(block)
	}
}

// renderBlock prints a single block as a titled box with its transactions.
func renderBlock(block ledger.Block) {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("prev:  %s", block.PreviousHash),
		fmt.Sprintf("hash:  %s", block.Hash),
		fmt.Sprintf("nonce: %d  difficulty: %d", block.Nonce, block.Difficulty),
	)
	for i, tx := range block.Transactions {
		lines = append(lines, fmt.Sprintf("%d) %s -> %s : %d  %s", i+1, tx.Sender, tx.Recipient, tx.Amount, tx.Note))
	}

	pterm.DefaultBox.
		WithTitle(fmt.Sprintf("Block %d", block.Index)).
		WithTitleTopLeft().
		Println(strings.Join(lines, "\n"))
}

func (sh *shell) validate(ctx context.Context) {
	if err := sh.ledger.Validate(ctx); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Println("Chain is valid.")
}

func (sh *shell) save(ctx context.Context, args []string) {
	if len(args) != 1 {
		pterm.Error.Println("Usage: save <file.json>")
		return
	}

	if err := sh.saves.Save(ctx, args[0]); err != nil {
		pterm.Error.Println(err)
		return
	}

	pterm.Success.Printfln("Saved to %s", args[0])
}

func (sh *shell) load(ctx context.Context, args []string) {
	if len(args) != 1 {
		pterm.Error.Println("Usage: load <file.json>")
		return
	}

	if err := sh.saves.Load(ctx, args[0]); err != nil {
		pterm.Error.Println(err)
		return
	}

	// The loaded state may not contain the logged-in account.
	sh.current = session.Session{}
	pterm.Success.Printfln("Loaded from %s. You are logged out.", args[0])
	sh.autosaver.persist(ctx)
}

// parseAmount parses a positive whole-unit amount.
func parseAmount(s string) (int64, error) {
	amount, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("amount must be a whole number")
	}

	return amount, nil
}
