// Task list demo.
//
// Builds a small task list, one entry of which is a composite with two
// subtasks, and prints it to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-demos/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-demos/internal/task"
)

// Version information - set at build time via ldflags
var (
	version = "dev"
	commit  = "unknown"
)

const (
	serviceName        = "tasklist"
	defaultConfigPath  = "configs/config.yaml"
	defaultEnvFilePath = ".env"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration for logging, builds the example list and prints it.
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
	log.Info("starting task list demo", "version", version, "commit", commit)

	tasks, err := buildTasks(task.SimpleFactory{})
	if err != nil {
		return fmt.Errorf("building tasks: %w", err)
	}
	log.Debug("task list built", "top_level", len(tasks))

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := task.NewPrinter(stdout).Print(tasks); err != nil {
		return fmt.Errorf("printing tasks: %w", err)
	}
	return nil
}

// buildTasks returns the demo list: two leaves around a composite with
// two subtasks.
func buildTasks(f task.Factory) ([]task.Task, error) {
	chores := task.NewCompositeTask("Weekend chores", "Clean house and run errands", "2023-05-06", "2023-05-07", 1)
	for _, sub := range []task.Task{
		f.CreateTask("Clean bathroom", "Scrub toilet and sink", "2023-05-06", "2023-05-06", 2),
		f.CreateTask("Grocery shopping", "Buy groceries for the week", "2023-05-07", "2023-05-07", 1),
	} {
		if err := chores.Add(sub); err != nil {
			return nil, err
		}
	}

	return []task.Task{
		f.CreateTask("Do laundry", "Wash clothes", "2023-05-01", "2023-05-02", 2),
		chores,
		f.CreateTask("Finish project", "Complete the final report", "2023-05-10", "2023-05-20", 3),
	}, nil
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
