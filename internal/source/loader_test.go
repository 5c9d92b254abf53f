package source_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dangerclosesec/iona/internal/domain"
	"github.com/dangerclosesec/iona/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"main.iona":  {Data: []byte("fn main {\n}")},
		"notes.txt":  {Data: []byte("hello")},
		"lib/a.iona": {Data: []byte("// a")},
	}
	loader := source.NewFSLoader(fsys, strings.NewReader("let x = 1"))
	ctx := context.Background()

	t.Run("reads a source file", func(t *testing.T) {
		text, err := loader.Load(ctx, "main.iona")
		require.NoError(t, err)
		assert.Equal(t, "fn main {\n}", text)

		text, err = loader.Load(ctx, "lib/a.iona")
		require.NoError(t, err)
		assert.Equal(t, "// a", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, "gone.iona")
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := loader.Load(ctx, "notes.txt")
		assert.ErrorIs(t, err, domain.ErrNotSourceFile)
	})

	t.Run("stdin", func(t *testing.T) {
		text, err := loader.Load(ctx, "-")
		require.NoError(t, err)
		assert.Equal(t, "let x = 1", text)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := loader.Load(cancelled, "main.iona")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
