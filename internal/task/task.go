package task

import "slices"

// Task is a unit of work in a task list.
type Task interface {
	Title() string
	Description() string
	StartDate() string
	EndDate() string
	Priority() int

	// IsComposite reports whether the task can hold children.
	IsComposite() bool

	// AsComposite returns the composite view of the task, if it has one.
	AsComposite() (Composite, bool)
}

// Composite is a task that holds an ordered list of child tasks.
type Composite interface {
	Task

	// Add appends a child. Duplicates are allowed.
	Add(child Task) error

	// Tasks returns the children in insertion order.
	Tasks() []Task
}

// details holds the fields shared by every task kind.
type details struct {
	title       string
	description string
	startDate   string
	endDate     string
	priority    int
}

func (d *details) Title() string       { return d.title }
func (d *details) Description() string { return d.description }
func (d *details) StartDate() string   { return d.startDate }
func (d *details) EndDate() string     { return d.endDate }
func (d *details) Priority() int       { return d.priority }

// SimpleTask is a leaf task with no children.
type SimpleTask struct {
	details
}

// NewSimpleTask creates a leaf task.
func NewSimpleTask(title, description, startDate, endDate string, priority int) *SimpleTask {
	return &SimpleTask{details{title, description, startDate, endDate, priority}}
}

// IsComposite always returns false.
func (*SimpleTask) IsComposite() bool { return false }

// AsComposite always returns (nil, false).
func (*SimpleTask) AsComposite() (Composite, bool) { return nil, false }

// CompositeTask is a task that owns an ordered list of children.
//
// Not safe for concurrent mutation.
type CompositeTask struct {
	details
	children []Task
}

// NewCompositeTask creates a composite with no children.
func NewCompositeTask(title, description, startDate, endDate string, priority int) *CompositeTask {
	return &CompositeTask{details: details{title, description, startDate, endDate, priority}}
}

// IsComposite always returns true.
func (*CompositeTask) IsComposite() bool { return true }

// AsComposite returns the task itself.
func (c *CompositeTask) AsComposite() (Composite, bool) { return c, true }

// Add appends child to the end of the list.
//
// Returns:
//   - error: ErrNilTask for a nil child, ErrSelfReference if child is c
func (c *CompositeTask) Add(child Task) error {
	if isNil(child) {
		return ErrNilTask
	}
	if other, ok := child.(*CompositeTask); ok && other == c {
		return ErrSelfReference
	}
	c.children = append(c.children, child)
	return nil
}

// Tasks returns a copy of the children in insertion order.
func (c *CompositeTask) Tasks() []Task {
	return slices.Clone(c.children)
}

// isNil catches both a nil interface and a typed nil pointer.
func isNil(t Task) bool {
	switch v := t.(type) {
	case nil:
		return true
	case *SimpleTask:
		return v == nil
	case *CompositeTask:
		return v == nil
	}
	return false
}

// Compile-time checks.
var (
	_ Task      = (*SimpleTask)(nil)
	_ Composite = (*CompositeTask)(nil)
)
