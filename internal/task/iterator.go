package task

import "slices"

// Iterator walks a task list forward, once.
type Iterator interface {
	HasNext() bool
	Next() (Task, error)
}

// TaskIterator iterates over a snapshot of a task slice. Composites are
// returned as-is; their children are not visited.
type TaskIterator struct {
	tasks []Task
	pos   int
}

// NewTaskIterator snapshots tasks. Later changes to the caller's slice do
// not affect the iteration.
func NewTaskIterator(tasks []Task) *TaskIterator {
	return &TaskIterator{tasks: slices.Clone(tasks)}
}

// HasNext reports whether Next will return a task.
func (it *TaskIterator) HasNext() bool {
	return it.pos < len(it.tasks)
}

// Next returns the next task and advances.
//
// Returns:
//   - error: ErrOutOfRange once every task has been returned
func (it *TaskIterator) Next() (Task, error) {
	if !it.HasNext() {
		return nil, ErrOutOfRange
	}
	t := it.tasks[it.pos]
	it.pos++
	return t, nil
}

var _ Iterator = (*TaskIterator)(nil)
