// Package app wires configuration, logging, storage and the console into a
// single Run call.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-kit/log/level"

	"github.com/medidepot/medidepot/auth"
	"github.com/medidepot/medidepot/config"
	"github.com/medidepot/medidepot/console"
	"github.com/medidepot/medidepot/inventory"
	"github.com/medidepot/medidepot/logging"
	"github.com/medidepot/medidepot/repository"
	"github.com/medidepot/medidepot/storage"
)

// Version is overridden at build time with -ldflags "-X ...app.Version=...".
var Version = "dev"

type flags struct {
	configPath  string
	showVersion bool
}

// Run starts one MediDepot session reading commands from stdin. Log output
// goes to stderr so it never mixes with the console.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "medidepot version %s\n", Version)
		return nil
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	handle, err := storage.Open(ctx, storageOptions(cfg.Database), logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := handle.Close(); err != nil {
			level.Error(logger).Log("msg", "closing database", "err", err)
		}
	}()

	store := repository.NewStore(handle.DB, handle.Dialect, logger)
	created, err := store.Initialize(ctx, repository.DefaultSeed())
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}

	ctrl := inventory.NewController(store,
		inventory.WithLogger(logger),
		inventory.WithFirstRun(created))
	verifier := auth.StaticVerifier{Username: cfg.Auth.Username, Password: cfg.Auth.Password}

	level.Info(logger).Log("msg", "starting session", "version", Version, "first_run", created)
	return console.New(ctrl, verifier, stdin, stdout,
		console.WithLogger(logger),
		console.WithExportDir(cfg.Export.Dir)).Run(ctx)
}

func storageOptions(db config.Database) storage.Options {
	return storage.Options{
		Driver:   db.Driver,
		Path:     db.Path,
		Packaged: db.Packaged,
		Postgres: storage.PostgresOptions{
			Port:     db.Postgres.Port,
			Username: db.Postgres.Username,
			Password: db.Postgres.Password,
			Database: db.Postgres.Database,
		},
	}
}

func parseFlags(args []string, output io.Writer) (flags, error) {
	set := flag.NewFlagSet("medidepot", flag.ContinueOnError)
	set.SetOutput(output)

	var f flags
	set.StringVar(&f.configPath, "config", "", "Path to a yaml, toml or json config file")
	set.BoolVar(&f.showVersion, "version", false, "Show the application version")

	if err := set.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}
