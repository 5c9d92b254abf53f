// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidConfig = errors.New("invalid config")

	// Source-related errors
	ErrSourceNotFound = errors.New("source not found")
	ErrNotSourceFile  = errors.New("not an iona source file")

	// Compilation-related errors
	ErrCompilationFailed = errors.New("compilation failed")
	ErrInvalidSeverity   = errors.New("invalid severity")
)
