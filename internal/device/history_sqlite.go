package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// sqliteTimestampLayout matches strftime('%Y-%m-%dT%H:%M:%fZ') in the
// device_history migration.
const sqliteTimestampLayout = "2006-01-02T15:04:05.000Z"

// SQLiteHistoryRepository implements HistoryRepository on the
// device_history table.
type SQLiteHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteHistoryRepository creates a repository on an open, migrated database.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SQLiteHistoryRepository: Repository instance ready for use
func NewSQLiteHistoryRepository(db *sql.DB) *SQLiteHistoryRepository {
	return &SQLiteHistoryRepository{db: db}
}

// RecordMessage inserts a free-text notification.
func (r *SQLiteHistoryRepository) RecordMessage(ctx context.Context, message string) error {
	if message == "" {
		return ErrEmptyMessage
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO device_history (message) VALUES (?)",
		message,
	)
	if err != nil {
		return fmt.Errorf("inserting device history: %w", err)
	}
	return nil
}

// RecordStateChange inserts a state change together with its text form.
//
// Returns:
//   - error: ErrInvalidName for an empty name, otherwise the database error
func (r *SQLiteHistoryRepository) RecordStateChange(ctx context.Context, name string, on bool) error {
	if name == "" {
		return ErrInvalidName
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO device_history (device_name, state, message) VALUES (?, ?, ?)",
		name,
		stateValue(on),
		StateChangeMessage(name, on),
	)
	if err != nil {
		return fmt.Errorf("inserting device history: %w", err)
	}
	return nil
}

// GetHistory returns recent entries ordered newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - name: Device name to filter on; empty returns everything
//   - limit: Maximum entries to return (default 50, max 200)
//
// Returns:
//   - []HistoryEntry: Entries ordered by id DESC (may be empty)
//   - error: nil on success, otherwise the underlying query error
func (r *SQLiteHistoryRepository) GetHistory(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	query := `SELECT id, device_name, state, message, created_at FROM device_history`
	args := []any{}
	if name != "" {
		query += ` WHERE device_name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying device history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry     HistoryEntry
			devName   sql.NullString
			state     sql.NullInt64
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &devName, &state, &entry.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning device history: %w", err)
		}

		entry.DeviceName = devName.String
		if state.Valid {
			on := state.Int64 == 1
			entry.On = &on
		}

		ts, err := parseHistoryTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		entry.CreatedAt = ts

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating device history: %w", err)
	}

	return entries, nil
}

// PruneHistory deletes entries older than the given duration.
//
// Returns:
//   - int64: Number of rows deleted
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteHistoryRepository) PruneHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("prune older than %s: %w", olderThan, ErrInvalidRetention)
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(sqliteTimestampLayout)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM device_history WHERE created_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting device history: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

// parseHistoryTimestamp accepts the millisecond layout written by SQLite
// and plain RFC 3339.
func parseHistoryTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("created_at is empty")
	}

	ts, err := time.Parse(sqliteTimestampLayout, value)
	if err == nil {
		return ts, nil
	}
	if fallback, fallbackErr := time.Parse(time.RFC3339Nano, value); fallbackErr == nil {
		return fallback, nil
	}

	return time.Time{}, fmt.Errorf("parsing created_at: %w", err)
}

// Compile-time check.
var _ HistoryRepository = (*SQLiteHistoryRepository)(nil)
