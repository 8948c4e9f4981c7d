package device

import "time"

// Device is a named switchable device.
//
// Name is the identity used by the Manager. Uniqueness is not enforced;
// lookups act on the first match in insertion order.
type Device struct {
	// ID is a UUID assigned by the Manager when the device is added.
	ID string `json:"id"`

	// Name is the display name and lookup key.
	Name string `json:"name"`

	// On is the current power state.
	On bool `json:"on"`

	// CreatedAt is when the device was added (UTC).
	CreatedAt time.Time `json:"created_at"`

	// StateUpdatedAt is the time of the last state change (UTC).
	// Zero until the state is first changed.
	StateUpdatedAt time.Time `json:"state_updated_at"`
}

// Operation is a bulk operation applied to every device.
type Operation string

// Bulk operations.
const (
	// OperationStart turns every device on.
	OperationStart Operation = "start"

	// OperationStop turns every device off.
	OperationStop Operation = "stop"
)

func (op Operation) valid() bool {
	return op == OperationStart || op == OperationStop
}

// targetState is the on/off value the operation sets.
func (op Operation) targetState() bool {
	return op == OperationStart
}
