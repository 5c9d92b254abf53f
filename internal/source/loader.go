// internal/source/loader.go
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dangerclosesec/iona/internal/domain"
)

// Extension is the file extension of Iona source files
const Extension = ".iona"

// Loader supplies raw source text to the compiler
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// FileLoader loads sources from a filesystem. "-" reads from Stdin.
type FileLoader struct {
	fsys  fs.FS
	stdin io.Reader
}

// NewFileLoader creates a loader over the OS filesystem
func NewFileLoader() *FileLoader {
	return &FileLoader{stdin: os.Stdin}
}

// NewFSLoader creates a loader rooted at fsys
func NewFSLoader(fsys fs.FS, stdin io.Reader) *FileLoader {
	return &FileLoader{fsys: fsys, stdin: stdin}
}

// Load reads the whole file at path
func (l *FileLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if path == "-" {
		if l.stdin == nil {
			return "", fmt.Errorf("reading stdin: %w", domain.ErrSourceNotFound)
		}
		content, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(content), nil
	}

	if filepath.Ext(path) != Extension {
		return "", fmt.Errorf("%s: %w", path, domain.ErrNotSourceFile)
	}

	var content []byte
	var err error
	if l.fsys != nil {
		content, err = fs.ReadFile(l.fsys, path)
	} else {
		content, err = os.ReadFile(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w", path, domain.ErrSourceNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	return string(content), nil
}
