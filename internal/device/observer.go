package device

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Observer receives registry notifications.
//
// Implementations must not retain the context beyond the call. Failures
// inside an observer are the observer's concern; nothing is reported back
// to the Manager.
type Observer interface {
	// OnMessage receives a free-text notification such as "New device X added".
	OnMessage(ctx context.Context, message string)

	// OnStateChange receives a structured device state change.
	OnStateChange(ctx context.Context, name string, on bool)
}

// Message builders for the free-text notifications.

// AddedMessage returns the notification sent when a device is added.
func AddedMessage(name string) string {
	return "New device " + name + " added"
}

// RemovedMessage returns the notification sent when a device is removed.
func RemovedMessage(name string) string {
	return "Device " + name + " removed"
}

// StateChangeMessage renders a state change in text form, state as 0 or 1.
func StateChangeMessage(name string, on bool) string {
	return fmt.Sprintf("Device %s changed state to %d", name, stateValue(on))
}

func stateValue(on bool) int {
	if on {
		return 1
	}
	return 0
}

// ConsoleObserver writes each notification as one line of text.
type ConsoleObserver struct {
	mu     sync.Mutex
	out    io.Writer
	logger Logger
}

// NewConsoleObserver creates an observer that writes to out (usually os.Stdout).
func NewConsoleObserver(out io.Writer) *ConsoleObserver {
	return &ConsoleObserver{out: out, logger: noopLogger{}}
}

// SetLogger sets the logger used to report write failures.
// Passing nil restores the no-op logger.
func (o *ConsoleObserver) SetLogger(logger Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if logger == nil {
		logger = noopLogger{}
	}
	o.logger = logger
}

// OnMessage prints the message followed by a newline.
func (o *ConsoleObserver) OnMessage(_ context.Context, message string) {
	o.println(message)
}

// OnStateChange prints "Device <name> changed state to <0|1>".
func (o *ConsoleObserver) OnStateChange(_ context.Context, name string, on bool) {
	o.println(StateChangeMessage(name, on))
}

func (o *ConsoleObserver) println(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := fmt.Fprintln(o.out, line); err != nil {
		o.logger.Error("writing console notification", "line", line, "error", err)
	}
}
