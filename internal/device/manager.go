package device

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Logger defines the logging interface used by the Manager.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Manager owns the ordered device list and broadcasts every change to its
// observers.
//
// Devices are copied in on add and copied out on read; callers never hold a
// reference into the registry. Observers are not owned: the Manager only
// calls them.
//
// All public methods are thread-safe.
type Manager struct {
	mu        sync.RWMutex
	devices   []*Device
	observers []Observer
	logger    Logger
	now       func() time.Time
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		logger: noopLogger{},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetLogger sets the logger for the manager.
func (m *Manager) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
}

// RegisterObserver appends an observer. Registering the same observer twice
// delivers every notification to it twice. A nil observer is ignored.
func (m *Manager) RegisterObserver(obs Observer) {
	if obs == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, obs)
	m.mu.Unlock()
}

// AddDevice appends a copy of dev and broadcasts "New device <name> added".
// Duplicate names are allowed. An ID is generated when dev.ID is empty.
//
// Returns:
//   - error: ErrInvalidName if dev.Name is empty
func (m *Manager) AddDevice(ctx context.Context, dev Device) error {
	if dev.Name == "" {
		return ErrInvalidName
	}

	d := dev
	if d.ID == "" {
		d.ID = GenerateID()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = m.now()
	}

	m.mu.Lock()
	m.devices = append(m.devices, &d)
	observers, logger := m.snapshotObservers()
	m.mu.Unlock()

	logger.Debug("device added", "name", d.Name, "id", d.ID)
	broadcastMessage(ctx, observers, AddedMessage(d.Name))
	return nil
}

// RemoveDevice removes the first device named name and broadcasts
// "Device <name> removed". Later devices keep their relative order.
//
// Returns:
//   - error: ErrDeviceNotFound if no device matched; nothing is broadcast
func (m *Manager) RemoveDevice(ctx context.Context, name string) error {
	m.mu.Lock()
	idx := m.indexOf(name)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("removing %q: %w", name, ErrDeviceNotFound)
	}
	m.devices = slices.Delete(m.devices, idx, idx+1)
	observers, logger := m.snapshotObservers()
	m.mu.Unlock()

	logger.Debug("device removed", "name", name)
	broadcastMessage(ctx, observers, RemovedMessage(name))
	return nil
}

// UpdateDeviceState sets the state of the first device named name and
// broadcasts the change. The change is broadcast even when the state is
// unchanged.
//
// Returns:
//   - error: ErrDeviceNotFound if no device matched; nothing is broadcast
func (m *Manager) UpdateDeviceState(ctx context.Context, name string, on bool) error {
	m.mu.Lock()
	idx := m.indexOf(name)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("updating %q: %w", name, ErrDeviceNotFound)
	}
	d := m.devices[idx]
	d.On = on
	d.StateUpdatedAt = m.now()
	observers, logger := m.snapshotObservers()
	m.mu.Unlock()

	logger.Debug("device state updated", "name", name, "on", on)
	broadcastStateChange(ctx, observers, name, on)
	return nil
}

// OperateAll applies op to every device, then broadcasts one state change
// per device in registry order. An empty registry broadcasts nothing.
//
// Returns:
//   - error: ErrInvalidOperation for anything but OperationStart or OperationStop
func (m *Manager) OperateAll(ctx context.Context, op Operation) error {
	if !op.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOperation, op)
	}
	on := op.targetState()

	m.mu.Lock()
	names := make([]string, len(m.devices))
	ts := m.now()
	for i, d := range m.devices {
		d.On = on
		d.StateUpdatedAt = ts
		names[i] = d.Name
	}
	observers, logger := m.snapshotObservers()
	m.mu.Unlock()

	logger.Info("bulk operation applied", "operation", string(op), "devices", len(names))
	for _, name := range names {
		broadcastStateChange(ctx, observers, name, on)
	}
	return nil
}

// Device returns a copy of the first device named name.
func (m *Manager) Device(name string) (Device, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := m.indexOf(name)
	if idx < 0 {
		return Device{}, false
	}
	return *m.devices[idx], true
}

// Devices returns copies of all devices in insertion order.
func (m *Manager) Devices() []Device {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Device, len(m.devices))
	for i, d := range m.devices {
		out[i] = *d
	}
	return out
}

// Count returns the number of devices.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.devices)
}

// ObserverCount returns the number of registered observers.
func (m *Manager) ObserverCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

// indexOf returns the position of the first device named name, or -1.
// Caller must hold mu.
func (m *Manager) indexOf(name string) int {
	for i, d := range m.devices {
		if d.Name == name {
			return i
		}
	}
	return -1
}

// snapshotObservers copies the observer list so it can be walked after
// the lock is released. Caller must hold mu.
func (m *Manager) snapshotObservers() ([]Observer, Logger) {
	obs := make([]Observer, len(m.observers))
	copy(obs, m.observers)
	return obs, m.logger
}

func broadcastMessage(ctx context.Context, observers []Observer, message string) {
	for _, o := range observers {
		o.OnMessage(ctx, message)
	}
}

func broadcastStateChange(ctx context.Context, observers []Observer, name string, on bool) {
	for _, o := range observers {
		o.OnStateChange(ctx, name, on)
	}
}
