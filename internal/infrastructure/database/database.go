package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dirPermissions  = 0750
	filePermissions = 0600 // history may name private devices
	msPerSecond     = 1000
	pingTimeout     = 5 * time.Second
)

// DB is the SQLite handle behind the device history sink.
// The embedded *sql.DB is used directly by repositories.
type DB struct {
	*sql.DB
}

// Config mirrors the connection keys of the database section in config.yaml.
// Reset and retention are handled by the caller, not here.
type Config struct {
	// Path of the history file. Missing parent directories are created.
	Path string

	// WALMode lets history reads run while the demo is writing.
	WALMode bool

	// BusyTimeout in seconds before a locked write gives up.
	BusyTimeout int
}

// Open opens (or creates) the history database at cfg.Path and checks it
// answers a ping before returning. Migrations are not applied; call Migrate.
//
// Parameters:
//   - ctx: Bounds the ping
//   - cfg: Connection settings
//
// Returns:
//   - *DB: Ready handle, limited to one connection
//   - error: Empty path, unwritable directory or failed ping
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("opening database: path is required")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// See: https://github.com/mattn/go-sqlite3#connection-string
	connStr := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path,
		cfg.BusyTimeout*msPerSecond,
	)
	if cfg.WALMode {
		connStr += "&_journal_mode=WAL&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite supports a single writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	_ = os.Chmod(cfg.Path, filePermissions) //nolint:errcheck // created lazily on first write

	return &DB{DB: sqlDB}, nil
}

// Close releases the handle. A zero DB closes cleanly.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// HealthCheck runs a trivial query; the demo calls it once at startup.
func (db *DB) HealthCheck(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	return nil
}

// BeginTx wraps sql.DB.BeginTx so callers get a contextual error.
// Migrations run each file inside one of these.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}
