package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/medidepot/medidepot/repository"
)

// DatabaseFile is the file name of the sqlite store.
const DatabaseFile = "praxislager.db"

// AppDirName is the per-user application-data folder used by packaged installs.
const AppDirName = "MediDepot"

// Options describe where and how the store is opened.
type Options struct {
	Driver   string
	Path     string
	Packaged bool
	Postgres PostgresOptions
}

// PostgresOptions configure the embedded PostgreSQL server.
type PostgresOptions struct {
	Port     uint32
	Username string
	Password string
	Database string
}

// Handle is an open database together with the dialect needed to query it.
type Handle struct {
	DB      *sql.DB
	Dialect repository.Dialect
	Path    string

	stop func() error
}

// Close closes the pool and stops the embedded server if one was started.
func (h *Handle) Close() error {
	err := h.DB.Close()
	if h.stop != nil {
		if stopErr := h.stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}
	return err
}

// ResolvePath returns the database location. Development runs use the given
// path (default DatabaseFile in the working directory); packaged runs place the
// file in the user's application-data directory, creating it if needed.
func ResolvePath(path string, packaged bool) (string, error) {
	if path == "" {
		path = DatabaseFile
	}
	if !packaged || filepath.IsAbs(path) {
		return path, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating application data directory: %w", err)
	}
	dir := filepath.Join(base, AppDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating application data directory: %w", err)
	}
	return filepath.Join(dir, filepath.Base(path)), nil
}

// Open opens the configured store. Failures are returned as-is and never retried.
func Open(ctx context.Context, opts Options, logger log.Logger) (*Handle, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	dialect, err := repository.ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}
	path, err := ResolvePath(opts.Path, opts.Packaged)
	if err != nil {
		return nil, err
	}

	switch dialect {
	case repository.DialectPostgres:
		return openPostgres(ctx, path, opts.Postgres, logger)
	default:
		return openSQLite(ctx, path, logger)
	}
}

func openSQLite(ctx context.Context, path string, logger log.Logger) (*Handle, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	// One connection gives the single-writer access the store relies on.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite database %s: %w", path, err)
	}
	level.Info(logger).Log("msg", "opened database", "driver", repository.DialectSQLite, "path", path)
	return &Handle{DB: db, Dialect: repository.DialectSQLite, Path: path}, nil
}

func openPostgres(ctx context.Context, path string, opts PostgresOptions, logger log.Logger) (*Handle, error) {
	opts = opts.withDefaults()
	dataDir := strings.TrimSuffix(path, filepath.Ext(path)) + "-pgdata"
	runtimeDir := dataDir + "-runtime"

	server := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(opts.Port).
		Username(opts.Username).
		Password(opts.Password).
		Database(opts.Database).
		DataPath(dataDir).
		RuntimePath(runtimeDir).
		Logger(logWriter{logger: logger}))
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("starting embedded postgres: %w", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%d user=%s password=%s dbname=%s sslmode=disable",
		opts.Port, opts.Username, opts.Password, opts.Database)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		_ = server.Stop()
		return nil, fmt.Errorf("opening postgres database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		_ = server.Stop()
		return nil, fmt.Errorf("connecting to postgres database: %w", err)
	}
	level.Info(logger).Log("msg", "opened database", "driver", repository.DialectPostgres, "data", dataDir, "port", opts.Port)
	return &Handle{DB: db, Dialect: repository.DialectPostgres, Path: dataDir, stop: server.Stop}, nil
}

func (o PostgresOptions) withDefaults() PostgresOptions {
	if o.Port == 0 {
		o.Port = 5433
	}
	if o.Username == "" {
		o.Username = "postgres"
	}
	if o.Password == "" {
		o.Password = "postgres"
	}
	if o.Database == "" {
		o.Database = "medidepot"
	}
	return o
}

// logWriter forwards the embedded server's output to the debug log.
type logWriter struct {
	logger log.Logger
}

var _ io.Writer = logWriter{}

func (w logWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	if msg != "" {
		level.Debug(w.logger).Log("component", "postgres", "msg", msg)
	}
	return len(p), nil
}
