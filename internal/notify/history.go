package notify

import (
	"context"

	"github.com/nerrad567/gray-logic-demos/internal/device"
)

// HistoryRecorder is the write side of device.HistoryRepository.
type HistoryRecorder interface {
	RecordMessage(ctx context.Context, message string) error
	RecordStateChange(ctx context.Context, name string, on bool) error
}

// HistoryObserver appends every notification to the device history store.
type HistoryObserver struct {
	repo   HistoryRecorder
	logger Logger
}

// NewHistoryObserver creates an observer recording into repo.
func NewHistoryObserver(repo HistoryRecorder, logger Logger) *HistoryObserver {
	return &HistoryObserver{repo: repo, logger: orNoop(logger)}
}

// OnMessage records the free-text notification.
func (o *HistoryObserver) OnMessage(ctx context.Context, message string) {
	if err := o.repo.RecordMessage(ctx, message); err != nil {
		o.logger.Warn("recording device history", "message", message, "error", err)
	}
}

// OnStateChange records the state change.
func (o *HistoryObserver) OnStateChange(ctx context.Context, name string, on bool) {
	if err := o.repo.RecordStateChange(ctx, name, on); err != nil {
		o.logger.Warn("recording device history", "device", name, "error", err)
	}
}

var (
	_ device.Observer = (*HistoryObserver)(nil)
	_ HistoryRecorder = (device.HistoryRepository)(nil)
)
