package device

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/database"
	_ "github.com/nerrad567/gray-logic-demos/migrations"
)

// setupHistoryTestDB opens a migrated SQLite file in a temp directory.
func setupHistoryTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{
		Path:        filepath.Join(t.TempDir(), "history.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func TestSQLiteHistoryRepository_RecordAndGet(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewSQLiteHistoryRepository(db.DB)
	ctx := context.Background()

	if err := repo.RecordMessage(ctx, "New device Device1 added"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}
	if err := repo.RecordStateChange(ctx, "Device1", true); err != nil {
		t.Fatalf("RecordStateChange() error = %v", err)
	}
	if err := repo.RecordStateChange(ctx, "Device2", false); err != nil {
		t.Fatalf("RecordStateChange() error = %v", err)
	}
	if err := repo.RecordStateChange(ctx, "Device1", false); err != nil {
		t.Fatalf("RecordStateChange() error = %v", err)
	}

	entries, err := repo.GetHistory(ctx, "Device1", 10)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}

	// Newest first.
	if entries[0].On == nil || *entries[0].On {
		t.Errorf("entries[0].On = %v, want false", entries[0].On)
	}
	if entries[1].On == nil || !*entries[1].On {
		t.Errorf("entries[1].On = %v, want true", entries[1].On)
	}
	if entries[1].Message != "Device Device1 changed state to 1" {
		t.Errorf("entries[1].Message = %q", entries[1].Message)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	all, err := repo.GetHistory(ctx, "", 0)
	if err != nil {
		t.Fatalf("GetHistory(all) error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len(all) = %d, want 4", len(all))
	}
	last := all[len(all)-1]
	if last.DeviceName != "" || last.On != nil || last.Message != "New device Device1 added" {
		t.Errorf("oldest entry = %+v, want free-text message", last)
	}
}

func TestSQLiteHistoryRepository_Limit(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewSQLiteHistoryRepository(db.DB)
	ctx := context.Background()

	for range 5 {
		if err := repo.RecordStateChange(ctx, "Device1", true); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := repo.GetHistory(ctx, "Device1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("len = %d, want 3", len(entries))
	}
}

func TestSQLiteHistoryRepository_Validation(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewSQLiteHistoryRepository(db.DB)
	ctx := context.Background()

	if err := repo.RecordStateChange(ctx, "", true); !errors.Is(err, ErrInvalidName) {
		t.Errorf("RecordStateChange(\"\") error = %v, want ErrInvalidName", err)
	}
	if err := repo.RecordMessage(ctx, ""); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("RecordMessage(\"\") error = %v, want ErrEmptyMessage", err)
	}
	for _, d := range []time.Duration{0, -time.Hour} {
		if _, err := repo.PruneHistory(ctx, d); !errors.Is(err, ErrInvalidRetention) {
			t.Errorf("PruneHistory(%s) error = %v, want ErrInvalidRetention", d, err)
		}
	}
}

func TestSQLiteHistoryRepository_Prune(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewSQLiteHistoryRepository(db.DB)
	ctx := context.Background()

	old := time.Now().UTC().Add(-48 * time.Hour).Format(sqliteTimestampLayout)
	if _, err := db.ExecContext(ctx,
		"INSERT INTO device_history (device_name, state, message, created_at) VALUES (?, ?, ?, ?)",
		"Device1", 1, "Device Device1 changed state to 1", old,
	); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordStateChange(ctx, "Device1", false); err != nil {
		t.Fatal(err)
	}

	n, err := repo.PruneHistory(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneHistory() error = %v", err)
	}
	if n != 1 {
		t.Errorf("pruned %d rows, want 1", n)
	}

	entries, err := repo.GetHistory(ctx, "Device1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("remaining = %d, want 1", len(entries))
	}
}

func TestParseHistoryTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2026-10-15T12:00:00.123Z", false},
		{"2026-10-15T12:00:00Z", false},
		{"", true},
		{"yesterday", true},
	}

	for _, tt := range tests {
		_, err := parseHistoryTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseHistoryTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
