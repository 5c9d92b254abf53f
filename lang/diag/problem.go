// File: diag/problem.go
package diag

import (
	"fmt"
	"strings"
)

// Class is the severity of a compiler problem. Classes are ordered Lint < Warning < Error.
type Class int

const (
	Lint Class = iota
	Warning
	Error
)

func (c Class) String() string {
	switch c {
	case Lint:
		return "Lint"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// ParseClass converts a case-insensitive class name ("lint", "warning", "error") to a Class
func ParseClass(name string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lint":
		return Lint, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	}
	return Lint, fmt.Errorf("unknown problem class %q", name)
}

// Problem is a single located diagnostic. Line and Word are zero-based source coordinates.
type Problem struct {
	Class   Class
	Message string
	Hint    string
	Line    int
	Word    int
}

// New creates a problem without a hint
func New(class Class, msg string, line, word int) *Problem {
	return &Problem{Class: class, Message: msg, Line: line, Word: word}
}

// Newf creates a problem with a formatted message
func Newf(class Class, line, word int, format string, args ...any) *Problem {
	return New(class, fmt.Sprintf(format, args...), line, word)
}

// WithHint returns the problem with its hint set
func (p *Problem) WithHint(hint string) *Problem {
	p.Hint = hint
	return p
}

// WithHintf returns the problem with a formatted hint
func (p *Problem) WithHintf(format string, args ...any) *Problem {
	p.Hint = fmt.Sprintf(format, args...)
	return p
}

// At relocates the problem to the given coordinates
func (p *Problem) At(line, word int) *Problem {
	p.Line = line
	p.Word = word
	return p
}

// Fatal reports whether the problem is Error-class
func (p Problem) Fatal() bool {
	return p.Class == Error
}

// Error implements the error interface
func (p Problem) Error() string {
	msg := fmt.Sprintf("%s (line %d, word %d): %s", p.Class, p.Line, p.Word, p.Message)
	if p.Hint != "" {
		msg += " (hint: " + p.Hint + ")"
	}
	return msg
}

// HasErrors reports whether any problem in the list is Error-class
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Fatal() {
			return true
		}
	}
	return false
}

// Filter returns the problems whose class is at least min, preserving order
func Filter(problems []Problem, min Class) []Problem {
	out := make([]Problem, 0, len(problems))
	for _, p := range problems {
		if p.Class >= min {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of problems of exactly the given class
func Count(problems []Problem, class Class) int {
	n := 0
	for _, p := range problems {
		if p.Class == class {
			n++
		}
	}
	return n
}
