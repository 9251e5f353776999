package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"

	"github.com/medidepot/medidepot/config"
	"github.com/medidepot/medidepot/logging"
	"github.com/medidepot/medidepot/repository"
	"github.com/medidepot/medidepot/storage"
)

// Reset throws away the configured inventory and recreates it with the full
// practice catalogue. A sqlite database file is deleted outright.
func Reset(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	set := flag.NewFlagSet("medidepot-reset", flag.ContinueOnError)
	set.SetOutput(stderr)
	configPath := set.String("config", "", "Path to a yaml, toml or json config file")
	if err := set.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}

	opts := storageOptions(cfg.Database)
	if opts.Driver == string(repository.DialectSQLite) {
		path, err := storage.ResolvePath(opts.Path, opts.Packaged)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing old database: %w", err)
		}
		level.Info(logger).Log("msg", "removed old database", "path", path)
	}

	handle, err := storage.Open(ctx, opts, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer handle.Close()

	store := repository.NewStore(handle.DB, handle.Dialect, logger)
	if handle.Dialect == repository.DialectPostgres {
		if err := store.DropTable(ctx); err != nil {
			return err
		}
	}
	catalogue := repository.PracticeCatalogue()
	if _, err := store.Initialize(ctx, catalogue); err != nil {
		return fmt.Errorf("recreating database: %w", err)
	}

	fmt.Fprintf(stdout, "Database %s recreated with %d items.\n", handle.Path, len(catalogue))
	return nil
}
