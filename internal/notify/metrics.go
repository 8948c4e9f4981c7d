package notify

import (
	"context"

	"github.com/nerrad567/gray-logic-demos/internal/device"
)

// StateWriter is the subset of *influxdb.Client used by MetricsObserver.
type StateWriter interface {
	WriteDeviceState(name string, on bool)
}

// MetricsObserver writes one device_state point per state change.
// Free-text messages carry no measurement and are ignored.
type MetricsObserver struct {
	w StateWriter
}

// NewMetricsObserver creates an observer writing through w.
func NewMetricsObserver(w StateWriter) *MetricsObserver {
	return &MetricsObserver{w: w}
}

// OnMessage is a no-op.
func (o *MetricsObserver) OnMessage(context.Context, string) {}

// OnStateChange queues a point; the write is asynchronous.
func (o *MetricsObserver) OnStateChange(_ context.Context, name string, on bool) {
	o.w.WriteDeviceState(name, on)
}

var _ device.Observer = (*MetricsObserver)(nil)
