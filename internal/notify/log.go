package notify

import (
	"context"

	"github.com/nerrad567/gray-logic-demos/internal/device"
)

// LogObserver mirrors registry notifications into the structured log at
// info level.
type LogObserver struct {
	logger Logger
}

// NewLogObserver creates a LogObserver writing to logger.
func NewLogObserver(logger Logger) *LogObserver {
	return &LogObserver{logger: orNoop(logger)}
}

// OnMessage logs the free-text notification.
func (o *LogObserver) OnMessage(_ context.Context, message string) {
	o.logger.Info("device registry", "message", message)
}

// OnStateChange logs the device and its new state.
func (o *LogObserver) OnStateChange(_ context.Context, name string, on bool) {
	o.logger.Info("device state changed", "device", name, "on", on)
}

var _ device.Observer = (*LogObserver)(nil)
