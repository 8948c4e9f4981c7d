package device

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
)

// recordingObserver captures notifications in the order they arrive.
type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingObserver) OnMessage(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "msg:"+message)
}

func (r *recordingObserver) OnStateChange(_ context.Context, name string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("state:%s=%t", name, on))
}

func (r *recordingObserver) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

func newTestManager(t *testing.T, names ...string) (*Manager, *recordingObserver) {
	t.Helper()

	m := NewManager()
	obs := &recordingObserver{}
	m.RegisterObserver(obs)

	for _, n := range names {
		if err := m.AddDevice(context.Background(), Device{Name: n}); err != nil {
			t.Fatalf("AddDevice(%q) error = %v", n, err)
		}
	}
	return m, obs
}

func deviceNames(m *Manager) []string {
	var names []string
	for _, d := range m.Devices() {
		names = append(names, d.Name)
	}
	return names
}

func TestAddDevice(t *testing.T) {
	m, obs := newTestManager(t)
	ctx := context.Background()

	for i, name := range []string{"Device1", "Device2", "Device1"} {
		if err := m.AddDevice(ctx, Device{Name: name}); err != nil {
			t.Fatalf("AddDevice() error = %v", err)
		}
		if got := m.Count(); got != i+1 {
			t.Errorf("Count() = %d, want %d", got, i+1)
		}
	}

	if got, want := deviceNames(m), []string{"Device1", "Device2", "Device1"}; !slices.Equal(got, want) {
		t.Errorf("names = %v, want %v", got, want)
	}

	want := []string{
		"msg:New device Device1 added",
		"msg:New device Device2 added",
		"msg:New device Device1 added",
	}
	if got := obs.Events(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestAddDevice_AssignsIdentity(t *testing.T) {
	m, _ := newTestManager(t, "Device1")

	d, ok := m.Device("Device1")
	if !ok {
		t.Fatal("Device() not found")
	}
	if d.ID == "" {
		t.Error("ID not generated")
	}
	if d.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if d.On {
		t.Error("new device should be off")
	}
}

func TestAddDevice_EmptyName(t *testing.T) {
	m, obs := newTestManager(t)

	err := m.AddDevice(context.Background(), Device{})
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("AddDevice() error = %v, want ErrInvalidName", err)
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
	if len(obs.Events()) != 0 {
		t.Errorf("events = %v, want none", obs.Events())
	}
}

func TestAddDevice_CopiesInput(t *testing.T) {
	m, _ := newTestManager(t)

	dev := Device{Name: "Device1"}
	if err := m.AddDevice(context.Background(), dev); err != nil {
		t.Fatal(err)
	}
	dev.On = true
	dev.Name = "Changed"

	got, ok := m.Device("Device1")
	if !ok || got.On {
		t.Errorf("registry affected by caller mutation: %+v, %v", got, ok)
	}
}

func TestDevices_ReturnsCopies(t *testing.T) {
	m, _ := newTestManager(t, "Device1")

	list := m.Devices()
	list[0].On = true

	if d, _ := m.Device("Device1"); d.On {
		t.Error("Devices() exposed internal state")
	}
}

func TestRemoveDevice(t *testing.T) {
	tests := []struct {
		name       string
		initial    []string
		remove     string
		wantNames  []string
		wantErr    error
		wantEvents []string
	}{
		{
			name:       "middle keeps order",
			initial:    []string{"Device1", "Device2", "Device3"},
			remove:     "Device2",
			wantNames:  []string{"Device1", "Device3"},
			wantEvents: []string{"msg:Device Device2 removed"},
		},
		{
			name:       "first of duplicates",
			initial:    []string{"A", "B", "A"},
			remove:     "A",
			wantNames:  []string{"B", "A"},
			wantEvents: []string{"msg:Device A removed"},
		},
		{
			name:      "missing",
			initial:   []string{"Device1"},
			remove:    "Device9",
			wantNames: []string{"Device1"},
			wantErr:   ErrDeviceNotFound,
		},
		{
			name:    "empty registry",
			remove:  "Device1",
			wantErr: ErrDeviceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t, tt.initial...)
			obs := &recordingObserver{}
			m.RegisterObserver(obs)

			err := m.RemoveDevice(context.Background(), tt.remove)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RemoveDevice() error = %v, want %v", err, tt.wantErr)
			}
			if got := deviceNames(m); !slices.Equal(got, tt.wantNames) {
				t.Errorf("names = %v, want %v", got, tt.wantNames)
			}
			if got := obs.Events(); !slices.Equal(got, tt.wantEvents) {
				t.Errorf("events = %v, want %v", got, tt.wantEvents)
			}
		})
	}
}

func TestUpdateDeviceState(t *testing.T) {
	m, obs := newTestManager(t, "Device1", "Device2")
	ctx := context.Background()

	if err := m.UpdateDeviceState(ctx, "Device2", true); err != nil {
		t.Fatalf("UpdateDeviceState() error = %v", err)
	}

	d2, _ := m.Device("Device2")
	if !d2.On {
		t.Error("Device2 should be on")
	}
	if d2.StateUpdatedAt.IsZero() {
		t.Error("StateUpdatedAt not set")
	}
	if d1, _ := m.Device("Device1"); d1.On {
		t.Error("Device1 should be unaffected")
	}

	events := obs.Events()
	if last := events[len(events)-1]; last != "state:Device2=true" {
		t.Errorf("last event = %q, want state:Device2=true", last)
	}

	// Setting the same state again still notifies.
	before := len(obs.Events())
	if err := m.UpdateDeviceState(ctx, "Device2", true); err != nil {
		t.Fatal(err)
	}
	if got := len(obs.Events()) - before; got != 1 {
		t.Errorf("repeat update emitted %d events, want 1", got)
	}
}

func TestUpdateDeviceState_NotFound(t *testing.T) {
	m, obs := newTestManager(t, "Device1")
	before := obs.Events()

	err := m.UpdateDeviceState(context.Background(), "Ghost", true)
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("UpdateDeviceState() error = %v, want ErrDeviceNotFound", err)
	}
	if got := obs.Events(); !slices.Equal(got, before) {
		t.Errorf("events changed on failed update: %v", got)
	}
}

func TestOperateAll(t *testing.T) {
	tests := []struct {
		name   string
		ops    []Operation
		wantOn bool
	}{
		{"start", []Operation{OperationStart}, true},
		{"stop", []Operation{OperationStop}, false},
		{"start then stop equals stop", []Operation{OperationStart, OperationStop}, false},
		{"stop then start equals start", []Operation{OperationStop, OperationStart}, true},
		{"start is idempotent", []Operation{OperationStart, OperationStart}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestManager(t, "Device1", "Device2", "Device3")
			for _, op := range tt.ops {
				if err := m.OperateAll(context.Background(), op); err != nil {
					t.Fatalf("OperateAll(%q) error = %v", op, err)
				}
			}
			for _, d := range m.Devices() {
				if d.On != tt.wantOn {
					t.Errorf("%s.On = %t, want %t", d.Name, d.On, tt.wantOn)
				}
			}
		})
	}
}

func TestOperateAll_NotificationOrder(t *testing.T) {
	m, _ := newTestManager(t, "Device1", "Device2", "Device3")
	obs := &recordingObserver{}
	m.RegisterObserver(obs)

	if err := m.OperateAll(context.Background(), OperationStop); err != nil {
		t.Fatal(err)
	}

	want := []string{"state:Device1=false", "state:Device2=false", "state:Device3=false"}
	if got := obs.Events(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestOperateAll_EmptyRegistry(t *testing.T) {
	m, obs := newTestManager(t)

	if err := m.OperateAll(context.Background(), OperationStart); err != nil {
		t.Fatal(err)
	}
	if len(obs.Events()) != 0 {
		t.Errorf("events = %v, want none", obs.Events())
	}
}

func TestOperateAll_InvalidOperation(t *testing.T) {
	m, obs := newTestManager(t, "Device1")
	before := obs.Events()

	err := m.OperateAll(context.Background(), Operation("reboot"))
	if !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("OperateAll() error = %v, want ErrInvalidOperation", err)
	}
	if got := obs.Events(); !slices.Equal(got, before) {
		t.Errorf("events changed: %v", got)
	}
}

func TestRegisterObserver(t *testing.T) {
	m := NewManager()
	obs := &recordingObserver{}

	m.RegisterObserver(nil)
	m.RegisterObserver(obs)
	m.RegisterObserver(obs)

	if got := m.ObserverCount(); got != 2 {
		t.Errorf("ObserverCount() = %d, want 2", got)
	}

	if err := m.AddDevice(context.Background(), Device{Name: "X"}); err != nil {
		t.Fatal(err)
	}
	if got := len(obs.Events()); got != 2 {
		t.Errorf("duplicate observer got %d events, want 2", got)
	}
}

func TestObserversCalledInRegistrationOrder(t *testing.T) {
	m := NewManager()
	var order []string
	for _, id := range []string{"first", "second", "third"} {
		m.RegisterObserver(funcObserver(func(string) { order = append(order, id) }))
	}

	if err := m.AddDevice(context.Background(), Device{Name: "X"}); err != nil {
		t.Fatal(err)
	}
	if want := []string{"first", "second", "third"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

// funcObserver adapts a function to Observer for ordering tests.
type funcObserver func(string)

func (f funcObserver) OnMessage(_ context.Context, msg string) { f(msg) }
func (f funcObserver) OnStateChange(_ context.Context, name string, on bool) {
	f(StateChangeMessage(name, on))
}

// reentrantObserver reads the manager from inside a notification.
type reentrantObserver struct {
	m      *Manager
	counts []int
}

func (r *reentrantObserver) OnMessage(context.Context, string) {
	r.counts = append(r.counts, r.m.Count())
}
func (r *reentrantObserver) OnStateChange(context.Context, string, bool) {}

func TestObserverSeesMutationAndMayReenter(t *testing.T) {
	m := NewManager()
	obs := &reentrantObserver{m: m}
	m.RegisterObserver(obs)

	ctx := context.Background()
	_ = m.AddDevice(ctx, Device{Name: "A"})
	_ = m.AddDevice(ctx, Device{Name: "B"})
	_ = m.RemoveDevice(ctx, "A")

	if want := []int{1, 2, 1}; !slices.Equal(obs.counts, want) {
		t.Errorf("counts seen by observer = %v, want %v", obs.counts, want)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()
	m.RegisterObserver(&recordingObserver{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("D%d", i)
			_ = m.AddDevice(ctx, Device{Name: name})
			_ = m.UpdateDeviceState(ctx, name, true)
			_ = m.OperateAll(ctx, OperationStop)
			_ = m.Devices()
		}(i)
	}
	wg.Wait()

	if m.Count() != 20 {
		t.Errorf("Count() = %d, want 20", m.Count())
	}
}

func TestSmartHouseSequence(t *testing.T) {
	var out strings.Builder
	m := NewManager()
	m.RegisterObserver(NewConsoleObserver(&out))
	ctx := context.Background()

	for _, n := range []string{"Device1", "Device2", "Device3"} {
		if err := m.AddDevice(ctx, Device{Name: n}); err != nil {
			t.Fatal(err)
		}
	}
	steps := []func() error{
		func() error { return m.UpdateDeviceState(ctx, "Device1", true) },
		func() error { return m.OperateAll(ctx, OperationStop) },
		func() error { return m.RemoveDevice(ctx, "Device2") },
		func() error { return m.RemoveDevice(ctx, "Device1") },
		func() error { return m.OperateAll(ctx, OperationStart) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := `New device Device1 added
New device Device2 added
New device Device3 added
Device Device1 changed state to 1
Device Device1 changed state to 0
Device Device2 changed state to 0
Device Device3 changed state to 0
Device Device2 removed
Device Device1 removed
Device Device3 changed state to 1
`
	if got := out.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if got := deviceNames(m); !slices.Equal(got, []string{"Device3"}) {
		t.Errorf("remaining = %v, want [Device3]", got)
	}
}
