package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by this package.
const (
	MeasurementDeviceState = "device_state"
)

// newDeviceStatePoint builds a device_state point: tag device, field on (0 or 1).
func newDeviceStatePoint(name string, on bool, ts time.Time) *write.Point {
	value := 0
	if on {
		value = 1
	}
	return write.NewPoint(
		MeasurementDeviceState,
		map[string]string{"device": name},
		map[string]interface{}{"on": value},
		ts,
	)
}

// WriteDeviceState records a device's on/off state.
//
// The write is non-blocking; the point is batched and sent asynchronously.
// On a disconnected client it is dropped silently.
//
// Example:
//
//	client.WriteDeviceState("Device1", true)
func (c *Client) WriteDeviceState(name string, on bool) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(newDeviceStatePoint(name, on, time.Now()))
}
