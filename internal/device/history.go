package device

import (
	"context"
	"time"
)

// HistoryEntry is one recorded registry notification.
//
// Free-text messages have an empty DeviceName and a nil On. State changes
// carry both, and Message holds the rendered text form.
type HistoryEntry struct {
	ID         int64     `json:"id"`
	DeviceName string    `json:"device_name,omitempty"`
	On         *bool     `json:"on,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryRepository stores and retrieves registry notification history.
//
// Implementations must be thread-safe and use UTC timestamps.
type HistoryRepository interface {
	// RecordMessage stores a free-text notification.
	RecordMessage(ctx context.Context, message string) error

	// RecordStateChange stores a structured state change.
	RecordStateChange(ctx context.Context, name string, on bool) error

	// GetHistory returns recent entries, newest first. An empty name
	// returns entries for all devices and free-text messages.
	GetHistory(ctx context.Context, name string, limit int) ([]HistoryEntry, error)
}
