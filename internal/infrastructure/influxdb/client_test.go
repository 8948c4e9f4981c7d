package influxdb

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/config"
)

func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:59999", // nothing listens here
		Org:           "graylogic",
		Bucket:        "devices",
		BatchSize:     10,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := Connect(context.Background(), cfg)
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, testConfig())
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestDisconnectedClient(t *testing.T) {
	c := &Client{}

	if c.IsConnected() {
		t.Error("IsConnected() = true for zero client")
	}
	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	// Writes and flushes on a disconnected client are dropped, not panics.
	c.WriteDeviceState("Device1", true)
	c.Flush()

	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewDeviceStatePoint(t *testing.T) {
	ts := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		on   bool
		want string
	}{
		{"on", true, "device_state,device=Device1 on=1i"},
		{"off", false, "device_state,device=Device1 on=0i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newDeviceStatePoint("Device1", tt.on, ts)
			line := write.PointToLineProtocol(p, time.Nanosecond)
			if !strings.HasPrefix(line, tt.want+" ") {
				t.Errorf("line = %q, want prefix %q", line, tt.want)
			}
		})
	}
}

func TestWriteErrorsCallback(t *testing.T) {
	c := &Client{}

	got := make(chan error, 1)
	c.SetOnError(func(err error) { got <- err })

	ch := make(chan error, 1)
	ch <- errors.New("bucket not found")
	close(ch)
	c.forwardWriteErrors(ch)

	select {
	case err := <-got:
		if !errors.Is(err, ErrWriteFailed) {
			t.Errorf("callback error = %v, want ErrWriteFailed", err)
		}
	default:
		t.Fatal("callback not invoked")
	}
}
