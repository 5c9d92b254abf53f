package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dangerclosesec/iona/internal/domain"
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "iona.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "lint", cfg.Compiler.MinSeverity)
	assert.False(t, cfg.Compiler.Fused)
	assert.GreaterOrEqual(t, cfg.Compiler.Workers, 1)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())

	class, err := cfg.MinSeverity()
	require.NoError(t, err)
	assert.Equal(t, diag.Lint, class)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("IONA_MIN_SEVERITY", "Warning")
	t.Setenv("IONA_FUSED", "true")
	t.Setenv("IONA_WORKERS", "3")
	t.Setenv("IONA_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warning", cfg.Compiler.MinSeverity)
	assert.True(t, cfg.Compiler.Fused)
	assert.Equal(t, 3, cfg.Compiler.Workers)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	t.Setenv("IONA_WORKERS", "3")
	path := writeFile(t, "compiler:\n  min_severity: error\n  workers: 8\nlog:\n  level: warn\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Compiler.Workers)
	class, err := cfg.MinSeverity()
	require.NoError(t, err)
	assert.Equal(t, diag.Error, class)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad severity", "compiler:\n  min_severity: fatal\n"},
		{"too many workers", "compiler:\n  workers: 1000\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"not yaml", "compiler: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
