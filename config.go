package iona

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/go-playground/validator/v10"
)

// Config holds the configuration settings for a compilation.
type Config struct {
	// ctx is the context for all operations.
	ctx context.Context

	// logger is the logger used for logging messages.
	logger *slog.Logger

	// Fused lexes and parses lines in parallel before the sequential passes.
	// Default is false.
	Fused bool

	// Workers bounds the goroutines used in fused mode.
	// Default is GOMAXPROCS.
	Workers int `validate:"min=1,max=256"`

	// MinSeverity is copied to Result.MinSeverity and hides problems below it from
	// Result.Visible. It never changes whether a compilation failed.
	// Default is Lint.
	MinSeverity diag.Class `validate:"min=0,max=2"`
}

func NewConfig(ctx context.Context) *Config {
	return &Config{
		ctx:         ctx,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Workers:     min(runtime.GOMAXPROCS(0), 256),
		MinSeverity: diag.Lint,
	}
}

// SetLogger sets the logger. A nil logger disables logging.
func (c *Config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.logger = logger
}

// SetFused toggles the parallel fused front end.
func (c *Config) SetFused(fused bool) {
	c.Fused = fused
}

// SetWorkers sets the fused mode worker limit.
func (c *Config) SetWorkers(workers int) {
	c.Workers = workers
}

// SetMinSeverity sets the lowest problem class reported.
func (c *Config) SetMinSeverity(class diag.Class) {
	c.MinSeverity = class
}

// Context returns the context the config was created with.
func (c *Config) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Validate checks the settings.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
