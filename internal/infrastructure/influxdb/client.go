package influxdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/config"
)

const (
	connectPingTimeout = 10 * time.Second
	healthPingTimeout  = 5 * time.Second

	defaultBatchSize     = 100
	defaultFlushInterval = 10 // seconds
)

// Client records device state points in one bucket.
//
// Points are buffered by the library and sent in batches, so writes never
// block the device registry. A failed batch reaches the SetOnError callback.
// Methods are safe for concurrent use.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI

	mu        sync.RWMutex
	connected bool
	onError   func(err error)
}

// Connect pings the server at cfg.URL and, if it answers healthy, opens a
// batching writer for cfg.Org/cfg.Bucket.
//
// Parameters:
//   - ctx: Bounds the ping, capped at 10s
//   - cfg: The influxdb section; zero batch size or flush interval take defaults
//
// Returns:
//   - *Client: Writer ready for WriteDeviceState
//   - error: ErrDisabled when the section is off, ErrConnectionFailed when
//     the server is unreachable or reports unhealthy
func Connect(ctx context.Context, cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	flushSeconds := cfg.FlushInterval
	if flushSeconds <= 0 {
		flushSeconds = defaultFlushInterval
	}

	flushMillis := time.Duration(flushSeconds) * time.Second / time.Millisecond
	// #nosec G115 -- both values forced positive above
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushMillis)),
	)

	pingCtx, cancel := context.WithTimeout(ctx, connectPingTimeout)
	defer cancel()

	if err := ping(pingCtx, client); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	c := &Client{
		client:    client,
		writeAPI:  client.WriteAPI(cfg.Org, cfg.Bucket),
		connected: true,
	}
	go c.forwardWriteErrors(c.writeAPI.Errors())

	return c, nil
}

func ping(ctx context.Context, client influxdb2.Client) error {
	healthy, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if !healthy {
		return fmt.Errorf("ping: server reports unhealthy")
	}
	return nil
}

// forwardWriteErrors drains the library's error channel until Close.
func (c *Client) forwardWriteErrors(errs <-chan error) {
	for err := range errs {
		c.mu.RLock()
		onError := c.onError
		c.mu.RUnlock()

		if onError != nil {
			onError(fmt.Errorf("%w: %w", ErrWriteFailed, err))
		}
	}
}

// Close sends any buffered points and releases the client.
// A zero Client closes cleanly.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	c.writeAPI.Flush()
	c.client.Close()
	return nil
}

// HealthCheck pings the server again; the demo calls it once at startup.
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	if err := ping(checkCtx, c.client); err != nil {
		return fmt.Errorf("influxdb health check: %w", err)
	}
	return nil
}

// IsConnected reports whether Connect succeeded and Close has not run.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// SetOnError registers the callback for failed batches. The smart-house
// demo logs them; a failed batch never stops the demo.
func (c *Client) SetOnError(callback func(err error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onError = callback
}

// Flush sends buffered points now. No-op after Close.
func (c *Client) Flush() {
	if !c.IsConnected() || c.writeAPI == nil {
		return
	}
	c.writeAPI.Flush()
}
