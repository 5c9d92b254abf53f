// internal/service/compile.go
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dangerclosesec/iona"
	"github.com/dangerclosesec/iona/internal/domain"
	"github.com/dangerclosesec/iona/internal/report"
	"github.com/dangerclosesec/iona/internal/source"
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/go-playground/validator/v10"
)

type CompileService struct {
	loader   source.Loader
	reporter report.Reporter
	logger   *slog.Logger
	validate *validator.Validate
}

func NewCompileService(loader source.Loader, reporter report.Reporter, logger *slog.Logger) *CompileService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CompileService{
		loader:   loader,
		reporter: reporter,
		logger:   logger.With(slog.String("component", "compile_service")),
		validate: validator.New(),
	}
}

type CompileInput struct {
	Path        string     `json:"path" validate:"required"`
	MinSeverity diag.Class `json:"min_severity" validate:"min=0,max=2"`
	Fused       bool       `json:"fused"`
	Workers     int        `json:"workers" validate:"min=1,max=256"`
}

// Compile loads and compiles one source file, reporting every problem at or above the
// input's minimum severity. The result is returned even when compilation fails, together
// with an error wrapping domain.ErrCompilationFailed.
func (s *CompileService) Compile(ctx context.Context, input CompileInput) (*iona.Result, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("validation failed: %w: %v", domain.ErrInvalidInput, err)
	}

	text, err := s.loader.Load(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}

	cfg := iona.NewConfig(ctx)
	cfg.SetLogger(s.logger)
	cfg.SetFused(input.Fused)
	cfg.SetWorkers(input.Workers)
	cfg.SetMinSeverity(input.MinSeverity)

	res, err := iona.Compile(cfg, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	visible := res.Visible()
	for _, problem := range visible {
		if err := s.reporter.Report(text, input.Path, problem); err != nil {
			return res, fmt.Errorf("reporting problem: %w", err)
		}
	}

	s.logger.DebugContext(ctx, "compiled",
		slog.String("path", input.Path),
		slog.String("run_id", res.RunID.String()),
		slog.Int("problems", len(res.Problems)),
		slog.Int("reported", len(visible)),
	)

	if res.Failed() {
		return res, fmt.Errorf("%s has %d error(s): %w", input.Path, diag.Count(res.Problems, diag.Error), domain.ErrCompilationFailed)
	}
	return res, nil
}

// Lex loads a source file and returns its tokens
func (s *CompileService) Lex(ctx context.Context, path string) ([]lexer.Token, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required: %w", domain.ErrInvalidInput)
	}
	text, err := s.loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading source: %w", err)
	}
	return lexer.Lex(text), nil
}
