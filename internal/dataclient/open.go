package dataclient

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Options configures how Open connects
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
	MaxRetries      uint
	Logger          *logrus.Logger
}

// Open connects to the configured database, retrying the initial ping with
// exponential backoff.
func Open(ctx context.Context, opts Options) (Database, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 1
	}

	var (
		db  Database
		err error
	)
	switch opts.Driver {
	case DriverSQLite, "sqlite":
		db, err = openSQLite(opts)
	case DriverPostgres, "pgx":
		db, err = openPostgres(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := pingWithRetry(ctx, db, opts); err != nil {
		db.Close()
		return nil, err
	}

	opts.Logger.WithField("driver", db.Driver()).Info("Database connection established")
	return db, nil
}

func openSQLite(opts Options) (*SQLClient, error) {
	dsn := opts.DSN
	if path := sqlitePath(dsn); path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	return NewSQLClient(db, DriverSQLite, opts.Logger), nil
}

func openPostgres(ctx context.Context, opts Options) (*PgxClient, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		cfg.MaxConns = int32(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		cfg.MinConns = int32(min(opts.MaxIdleConns, opts.MaxOpenConns))
	}
	if opts.ConnMaxLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnMaxLifetime
	}
	if opts.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	return NewPgxClient(pool, opts.Logger), nil
}

func pingWithRetry(ctx context.Context, db Database, opts Options) error {
	operation := func() (struct{}, error) {
		pingCtx := ctx
		if opts.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			pingCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
			defer cancel()
		}
		return struct{}{}, db.Ping(pingCtx)
	}

	notify := func(err error, next time.Duration) {
		opts.Logger.WithError(err).WithField("retry_in", next).Warn("Database not reachable, retrying")
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(opts.MaxRetries),
		backoff.WithNotify(notify),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

// sqlitePath extracts the file path from a sqlite DSN
func sqlitePath(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return path
}
