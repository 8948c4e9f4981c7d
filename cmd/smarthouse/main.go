// Smart-house demo.
//
// Builds a device registry, attaches the configured observers and runs a
// fixed sequence of adds, state changes, bulk operations and removals.
// Every notification is printed to stdout; logs go to stderr or a file.
//
// Optional sinks (MQTT, InfluxDB, SQLite history) are enabled in
// configs/config.yaml or the file named by GRAYLOGIC_CONFIG.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nerrad567/gray-logic-demos/migrations"

	"github.com/nerrad567/gray-logic-demos/internal/device"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-demos/internal/notify"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	serviceName        = "smarthouse"
	defaultConfigPath  = "configs/config.yaml"
	defaultEnvFilePath = ".env"
	healthTimeout      = 5 * time.Second

	historySummaryLimit = 20
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the observers and plays the demo sequence.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - stdout: Destination for console notifications
//
// Returns:
//   - error: nil when the sequence completes, otherwise the first failure
func run(ctx context.Context, stdout io.Writer) error {
	log := logging.Default(serviceName)

	if err := config.LoadEnvFile(getEnvFilePath()); err != nil {
		return err
	}

	configPath := getConfigPath()
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		log.Error("configuration rejected", "path", configPath, "error", err)
		return fmt.Errorf("loading config: %w", err)
	}

	log = logging.New(cfg.Logging, serviceName, version)
	defer log.Close()
	log.Info("starting smart-house demo",
		"version", version,
		"commit", commit,
		"build_date", date,
		"config", configPath,
	)

	mgr := device.NewManager()
	mgr.SetLogger(log)

	sinks := openSinks(ctx, cfg, log)
	defer sinks.close(log)

	if cfg.Notify.Console {
		console := device.NewConsoleObserver(stdout)
		console.SetLogger(log.With("component", "console"))
		mgr.RegisterObserver(console)
	}
	if cfg.Notify.Log {
		mgr.RegisterObserver(notify.NewLogObserver(log))
	}
	for _, obs := range sinks.observers(log) {
		mgr.RegisterObserver(obs)
	}
	log.Info("observers registered", "count", mgr.ObserverCount())

	sinks.healthCheck(ctx, log)

	if err := playSequence(ctx, mgr); err != nil {
		return err
	}

	sinks.historySummary(ctx, log)
	log.Info("demo complete", "devices", mgr.Count())
	return nil
}

// playSequence runs the fixed demo script against mgr.
func playSequence(ctx context.Context, mgr *device.Manager) error {
	for _, name := range []string{"Device1", "Device2", "Device3"} {
		if err := mgr.AddDevice(ctx, device.Device{Name: name}); err != nil {
			return fmt.Errorf("adding %s: %w", name, err)
		}
	}

	if err := mgr.UpdateDeviceState(ctx, "Device1", true); err != nil {
		return err
	}
	if err := mgr.OperateAll(ctx, device.OperationStop); err != nil {
		return err
	}
	if err := mgr.RemoveDevice(ctx, "Device2"); err != nil {
		return err
	}
	if err := mgr.RemoveDevice(ctx, "Device1"); err != nil {
		return err
	}
	return mgr.OperateAll(ctx, device.OperationStart)
}

// sinks holds the optional external connections. Nil fields are disabled,
// either by config or because the sink could not be reached at startup.
type sinks struct {
	db      *database.DB
	history *device.SQLiteHistoryRepository
	mqtt    *mqtt.Client
	influx  *influxdb.Client
}

// openSinks connects every enabled sink. A sink that cannot be opened is
// logged and left disabled; the console demo runs regardless.
func openSinks(ctx context.Context, cfg *config.Config, log *logging.Logger) *sinks {
	s := &sinks{}
	s.openHistory(ctx, cfg.Database, log.With("component", "database"))
	s.openMQTT(ctx, cfg.MQTT, log.With("component", "mqtt"))
	s.openInfluxDB(ctx, cfg.InfluxDB, log.With("component", "influxdb"))
	return s
}

func (s *sinks) openHistory(ctx context.Context, cfg config.DatabaseConfig, log *logging.Logger) {
	if !cfg.Enabled {
		return
	}

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Path,
		WALMode:     cfg.WALMode,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		log.Warn("database unavailable, history sink disabled", "path", cfg.Path, "error", err)
		return
	}

	if err := prepareHistory(ctx, db, cfg, log); err != nil {
		log.Warn("database not usable, history sink disabled", "path", cfg.Path, "error", err)
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
		return
	}

	s.db = db
	s.history = device.NewSQLiteHistoryRepository(db.DB)
	log.Info("device history enabled", "path", cfg.Path)
}

// prepareHistory brings the schema up to date, optionally from scratch,
// and drops entries older than the configured retention.
func prepareHistory(ctx context.Context, db *database.DB, cfg config.DatabaseConfig, log *logging.Logger) error {
	if cfg.Reset {
		n, err := db.Reset(ctx)
		if err != nil {
			return fmt.Errorf("resetting database: %w", err)
		}
		log.Info("database reset", "rolled_back", n)
	}

	_, pending, err := db.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("reading migration status: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Debug("database migrations complete", "applied", len(pending))

	if cfg.HistoryRetention > 0 {
		retention := time.Duration(cfg.HistoryRetention) * 24 * time.Hour
		n, err := device.NewSQLiteHistoryRepository(db.DB).PruneHistory(ctx, retention)
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		log.Info("device history pruned", "deleted", n, "retention_days", cfg.HistoryRetention)
	}
	return nil
}

func (s *sinks) openMQTT(ctx context.Context, cfg config.MQTTConfig, log *logging.Logger) {
	if !cfg.Enabled {
		return
	}

	broker := fmt.Sprintf("%s:%d", cfg.Broker.Host, cfg.Broker.Port)
	client, err := mqtt.Connect(ctx, cfg)
	if err != nil {
		log.Warn("MQTT unavailable, sink disabled", "broker", broker, "error", err)
		return
	}
	client.SetOnConnect(func() {
		log.Info("MQTT connected", "broker", broker)
	})
	client.SetOnDisconnect(func(err error) {
		log.Warn("MQTT connection lost", "broker", broker, "error", err)
	})

	s.mqtt = client
	log.Info("MQTT connected", "broker", broker, "client_id", cfg.Broker.ClientID)
}

func (s *sinks) openInfluxDB(ctx context.Context, cfg config.InfluxDBConfig, log *logging.Logger) {
	if !cfg.Enabled {
		return
	}

	client, err := influxdb.Connect(ctx, cfg)
	if err != nil {
		log.Warn("InfluxDB unavailable, sink disabled", "url", cfg.URL, "error", err)
		return
	}
	client.SetOnError(func(err error) {
		log.Warn("InfluxDB write failed", "error", err)
	})

	s.influx = client
	log.Info("InfluxDB connected", "url", cfg.URL, "bucket", cfg.Bucket)
}

// observers returns one observer per open sink.
func (s *sinks) observers(log *logging.Logger) []device.Observer {
	var obs []device.Observer
	if s.history != nil {
		obs = append(obs, notify.NewHistoryObserver(s.history, log.With("component", "history")))
	}
	if s.mqtt != nil {
		obs = append(obs, notify.NewMQTTObserver(s.mqtt, log.With("component", "mqtt")))
	}
	if s.influx != nil {
		obs = append(obs, notify.NewMetricsObserver(s.influx))
	}
	return obs
}

// healthCheck logs the state of every open sink. Failures are warnings;
// the demo still runs against the console.
func (s *sinks) healthCheck(ctx context.Context, log *logging.Logger) {
	checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	var errs []error
	if s.db != nil {
		if err := s.db.HealthCheck(checkCtx); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if s.mqtt != nil {
		if err := s.mqtt.HealthCheck(checkCtx); err != nil {
			errs = append(errs, fmt.Errorf("mqtt: %w", err))
		}
	}
	if s.influx != nil {
		if err := s.influx.HealthCheck(checkCtx); err != nil {
			errs = append(errs, fmt.Errorf("influxdb: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Warn("sink health check failed", "error", err)
	}
}

// historySummary reads back the most recent history entries so the log
// shows what the run recorded.
func (s *sinks) historySummary(ctx context.Context, log *logging.Logger) {
	if s.history == nil {
		return
	}

	entries, err := s.history.GetHistory(ctx, "", historySummaryLimit)
	if err != nil {
		log.Warn("reading device history", "error", err)
		return
	}
	for _, e := range entries {
		log.Debug("device history", "id", e.ID, "message", e.Message, "created_at", e.CreatedAt)
	}
	log.Info("device history recorded", "recent", len(entries))
}

// close shuts down sinks in reverse order of opening.
func (s *sinks) close(log *logging.Logger) {
	if s.influx != nil {
		s.influx.Flush()
		if err := s.influx.Close(); err != nil {
			log.Error("error closing InfluxDB", "error", err)
		}
	}
	if s.mqtt != nil {
		if err := s.mqtt.Close(); err != nil {
			log.Error("error closing MQTT", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Error("error closing database", "error", err)
		}
	}
}

// getConfigPath returns the config path from GRAYLOGIC_CONFIG or the default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// getEnvFilePath returns the dotenv path from GRAYLOGIC_ENV_FILE or the default.
func getEnvFilePath() string {
	if path := os.Getenv("GRAYLOGIC_ENV_FILE"); path != "" {
		return path
	}
	return defaultEnvFilePath
}
