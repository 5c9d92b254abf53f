// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/dangerclosesec/iona/internal/domain"
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file the CLI reads when it exists
const DefaultFile = "iona.yaml"

type Config struct {
	Compiler struct {
		MinSeverity string `yaml:"min_severity" validate:"oneof=lint warning error"`
		Fused       bool   `yaml:"fused"`
		Workers     int    `yaml:"workers" validate:"min=1,max=256"`
	} `yaml:"compiler"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
}

// Load reads the environment, overlays the YAML file at path and validates the result. An
// empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// Compiler configuration
	cfg.Compiler.MinSeverity = getEnv("IONA_MIN_SEVERITY", "lint")
	cfg.Compiler.Fused = getEnvBool("IONA_FUSED", false)
	cfg.Compiler.Workers = getEnvInt("IONA_WORKERS", min(runtime.GOMAXPROCS(0), 256))

	// Log configuration
	cfg.Log.Level = getEnv("IONA_LOG_LEVEL", "info")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w: %v", path, domain.ErrInvalidConfig, err)
		}
	}

	cfg.Compiler.MinSeverity = strings.ToLower(cfg.Compiler.MinSeverity)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// MinSeverity returns the configured minimum problem class
func (c *Config) MinSeverity() (diag.Class, error) {
	class, err := diag.ParseClass(c.Compiler.MinSeverity)
	if err != nil {
		return diag.Lint, fmt.Errorf("%w: %v", domain.ErrInvalidSeverity, err)
	}
	return class, nil
}

// LogLevel returns the configured slog level
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// Discover returns DefaultFile when it exists in the working directory, otherwise ""
func Discover() string {
	if _, err := os.Stat(DefaultFile); err != nil {
		return ""
	}
	return DefaultFile
}
