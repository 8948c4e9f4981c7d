// Package device provides the smart-house device registry.
//
// A Manager holds an ordered list of on/off devices and an ordered list of
// observers. Every mutation is broadcast to the observers after it has been
// applied:
//
//	┌──────────────┐  OnMessage / OnStateChange  ┌──────────────────┐
//	│   Manager    │ ──────────────────────────▶ │ ConsoleObserver  │
//	│ (manager.go) │                             │ notify.* sinks   │
//	└──────────────┘                             └──────────────────┘
//	       │
//	       ▼ (optional, via notify.HistoryObserver)
//	┌──────────────────────────┐
//	│ SQLiteHistoryRepository  │
//	│   (device_history table) │
//	└──────────────────────────┘
//
// The Manager is constructed explicitly and passed to whoever needs it.
// There is no package-level instance.
//
// # Usage
//
//	mgr := device.NewManager()
//	mgr.RegisterObserver(device.NewConsoleObserver(os.Stdout))
//
//	if err := mgr.AddDevice(ctx, device.Device{Name: "Device1"}); err != nil {
//	    return err
//	}
//	if err := mgr.OperateAll(ctx, device.OperationStop); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All Manager methods are safe for concurrent use. Observers are invoked
// synchronously on the calling goroutine, outside the registry lock, so an
// observer may read the Manager without deadlocking.
package device
