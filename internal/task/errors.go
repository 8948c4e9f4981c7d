package task

import "errors"

// Domain errors for the task package.
var (
	// ErrOutOfRange is returned by Next when the iterator is exhausted.
	ErrOutOfRange = errors.New("task: iterator out of range")

	// ErrNilTask is returned when adding a nil child to a composite.
	ErrNilTask = errors.New("task: nil task")

	// ErrSelfReference is returned when a composite is added to itself.
	ErrSelfReference = errors.New("task: composite cannot contain itself")
)
