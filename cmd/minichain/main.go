package main

import (
	"context"

	"github.com/HyrumHendrickson/Blockchain-v1/internal/handlers/cli"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/infra/storage/bolt"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/infra/storage/file"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/ledger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/logger"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/pkg/validation"
	"github.com/HyrumHendrickson/Blockchain-v1/internal/snapshot"

	"github.com/kelseyhightower/envconfig"
)

// config holds the process-level settings, read from MINICHAIN_* environment
// variables. Everything has a usable default so the tool runs with no setup.
type config struct {
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	Difficulty      int    `envconfig:"DIFFICULTY" default:"2"`
	Reward          int64  `envconfig:"REWARD" default:"10"`
	EnforceSolvency bool   `envconfig:"ENFORCE_SOLVENCY" default:"true"`

	// AutosavePath enables best-effort autosave into a bbolt database at the
	// given path. Empty disables autosave entirely.
	AutosavePath string `envconfig:"AUTOSAVE_PATH"`

	// AutosaveName is the document name autosaves are stored under.
	AutosaveName string `envconfig:"AUTOSAVE_NAME" default:"autosave"`
}

func main() {
	ctx := context.Background()

	var cfg config
	if err := envconfig.Process("minichain", &cfg); err != nil {
		panic(err)
	}

	if err := logger.Init(logger.WithLevel(cfg.LogLevel)); err != nil {
		panic(err)
	}
	defer logger.Sync()

	validation.Init()

	led := ledger.New(
		ledger.WithDifficulty(cfg.Difficulty),
		ledger.WithReward(cfg.Reward),
		ledger.WithSolvencyEnforcement(cfg.EnforceSolvency),
	)

	saves := snapshot.New(led, file.NewClient())

	var autosaver *cli.Autosaver
	if cfg.AutosavePath != "" {
		store, err := bolt.NewClient(cfg.AutosavePath)
		if err != nil {
			logger.Fatal(ctx, "failed to open autosave database", "error", err)
		}
		defer store.Close()

		autosaver = cli.NewAutosaver(snapshot.New(led, store), cfg.AutosaveName)
	}

	if err := cli.Run(ctx, led, saves, autosaver); err != nil {
		logger.Fatal(ctx, "execution failed", "error", err)
	}
}
