// Package task models a task list as a tree of simple and composite tasks.
//
// A Task is either a leaf (SimpleTask) or a CompositeTask holding an ordered
// list of child tasks. Leaves are built through a Factory, lists are walked
// with a TaskIterator, and a Printer renders a list as indented text:
//
//	f := task.SimpleFactory{}
//	chores := task.NewCompositeTask("Weekend chores", "Clean house", "2023-05-06", "2023-05-07", 1)
//	_ = chores.Add(f.CreateTask("Clean bathroom", "Scrub toilet and sink", "2023-05-06", "2023-05-06", 2))
//
//	p := task.NewPrinter(os.Stdout)
//	_ = p.Print([]task.Task{chores})
//
// Dates are opaque strings and priorities are unconstrained integers;
// neither is parsed or validated.
package task
