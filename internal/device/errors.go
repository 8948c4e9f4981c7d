package device

import "errors"

// Domain errors for the device package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, device.ErrDeviceNotFound) {
//	    // handle not found case
//	}
var (
	// ErrDeviceNotFound is returned when no device has the given name.
	ErrDeviceNotFound = errors.New("device: not found")

	// ErrInvalidName is returned when a device name is empty.
	ErrInvalidName = errors.New("device: invalid name")

	// ErrInvalidOperation is returned for a bulk operation other than start or stop.
	ErrInvalidOperation = errors.New("device: invalid operation")

	// ErrEmptyMessage is returned when recording a blank history message.
	ErrEmptyMessage = errors.New("device: empty history message")

	// ErrInvalidRetention is returned when a prune window is not positive.
	ErrInvalidRetention = errors.New("device: retention must be positive")
)
