// internal/report/reporter.go
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Reporter presents compiler problems to the user
type Reporter interface {
	Report(source, label string, problem diag.Problem) error
}

// TextReporter writes each problem with the line above, the line itself and the line below
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a text reporter writing to w
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report writes one problem. Line numbers are shown 1-based.
func (r *TextReporter) Report(source, label string, problem diag.Problem) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s on line %d: %s: %s.", label, problem.Line+1, problem.Class, strings.TrimSuffix(problem.Message, "."))
	if problem.Hint != "" {
		fmt.Fprintf(&b, " %s", problem.Hint)
	}
	b.WriteString("\n")

	lines := lexer.SplitLines(source)
	from := max(problem.Line-1, 0)
	to := min(problem.Line+2, len(lines))
	width := len(fmt.Sprint(to))
	for i := from; i < to; i++ {
		marker := " "
		if i == problem.Line {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %*d | %s\n", marker, width, i+1, lines[i])
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

// NoOpReporter discards every problem
type NoOpReporter struct{}

// Report does nothing
func (NoOpReporter) Report(string, string, diag.Problem) error {
	return nil
}
