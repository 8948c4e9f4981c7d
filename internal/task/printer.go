package task

import (
	"bufio"
	"fmt"
	"io"
)

// Printer renders a task list as labelled text blocks.
//
// Each top-level task prints as:
//
//	Title: <title>
//	Description: <description>
//	Start date: <start>
//	End date: <end>
//	Priority: <priority>
//
// Composites add a "Subtasks: " line followed by one tab-indented block
// per direct child, each followed by a blank line. A blank line ends every
// top-level task. Grandchildren are not printed.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Print writes every task in order.
//
// Returns:
//   - error: the first write error, if any
func (p *Printer) Print(tasks []Task) error {
	w := bufio.NewWriter(p.out)

	it := NewTaskIterator(tasks)
	for it.HasNext() {
		t, err := it.Next()
		if err != nil {
			return err
		}
		printTask(w, t)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing tasks: %w", err)
	}
	return nil
}

// printTask writes one top-level block. bufio.Writer keeps the first
// error and reports it from Flush.
func printTask(w *bufio.Writer, t Task) {
	printDetails(w, "", t)

	if c, ok := t.AsComposite(); ok {
		fmt.Fprintln(w, "Subtasks: ")
		for _, child := range c.Tasks() {
			printDetails(w, "\t", child)
			fmt.Fprintln(w)
		}
	}

	fmt.Fprintln(w)
}

func printDetails(w io.Writer, indent string, t Task) {
	fmt.Fprintf(w, "%sTitle: %s\n", indent, t.Title())
	fmt.Fprintf(w, "%sDescription: %s\n", indent, t.Description())
	fmt.Fprintf(w, "%sStart date: %s\n", indent, t.StartDate())
	fmt.Fprintf(w, "%sEnd date: %s\n", indent, t.EndDate())
	fmt.Fprintf(w, "%sPriority: %d\n", indent, t.Priority())
}
