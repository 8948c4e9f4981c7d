package task

// Factory creates leaf tasks.
type Factory interface {
	CreateTask(title, description, startDate, endDate string, priority int) Task
}

// SimpleFactory creates *SimpleTask values. It is stateless; the zero
// value is ready to use.
type SimpleFactory struct{}

// CreateTask returns a new SimpleTask. It never fails.
func (SimpleFactory) CreateTask(title, description, startDate, endDate string, priority int) Task {
	return NewSimpleTask(title, description, startDate, endDate, priority)
}

var _ Factory = SimpleFactory{}
