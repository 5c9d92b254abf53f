// Package iona is the compiler front end for the Iona language. Compile runs the whole
// pipeline: lexing and parsing (sequential or fused), the scope pass, expression resolution
// against a provisional arity snapshot and finally the function table.
package iona

import (
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
	"github.com/dangerclosesec/iona/lang/parser"
	"github.com/google/uuid"
)

// Result is everything one compilation produced
type Result struct {
	RunID     uuid.UUID
	Tokens    []lexer.Token
	Nodes     []parser.Node
	Functions *model.FunctionTable
	// Problems holds every problem from every stage in stage order
	Problems []diag.Problem
	// MinSeverity is the lowest class Visible returns, taken from the config
	MinSeverity diag.Class
}

// Failed reports whether any Error-class problem was found
func (r *Result) Failed() bool {
	return diag.HasErrors(r.Problems)
}

// Visible returns the problems at or above MinSeverity. Filtering never affects Failed.
func (r *Result) Visible() []diag.Problem {
	return diag.Filter(r.Problems, r.MinSeverity)
}

// Compile runs the front end over source text. Source problems are reported in the result;
// the error is only set for an invalid config.
func Compile(cfg *Config, source string) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	res := &Result{RunID: uuid.New(), MinSeverity: cfg.MinSeverity}
	logger := cfg.logger.With(
		slog.String("component", "compiler"),
		slog.String("run_id", res.RunID.String()),
	)

	var front parser.Fragment
	if cfg.Fused {
		front = parser.Fused(source, cfg.Workers)
	} else {
		front = parser.LexAndParse(source)
	}
	res.Tokens = front.Tokens
	res.Nodes = front.Nodes
	res.Problems = front.Problems
	logger.DebugContext(cfg.Context(), "parsed",
		slog.Bool("fused", cfg.Fused),
		slog.Int("tokens", len(res.Tokens)),
		slog.Int("nodes", len(res.Nodes)),
		slog.Int("problems", len(res.Problems)),
	)

	scopeProblems := parser.ComputeScopes(res.Nodes)
	res.Problems = append(res.Problems, scopeProblems...)
	logger.DebugContext(cfg.Context(), "scopes computed", slog.Int("problems", len(scopeProblems)))

	arities := parser.BuildArityTable(res.Nodes)
	exprProblems := parser.ResolveExpressions(res.Nodes, arities)
	res.Problems = append(res.Problems, exprProblems...)
	logger.DebugContext(cfg.Context(), "expressions resolved",
		slog.Int("functions", len(arities)),
		slog.Int("problems", len(exprProblems)),
	)

	table, tableProblems := parser.PopulateFunctionTable(res.Nodes)
	res.Functions = table
	res.Problems = append(res.Problems, tableProblems...)
	logger.DebugContext(cfg.Context(), "function table built",
		slog.Int("functions", table.Len()),
		slog.Int("problems", len(tableProblems)),
	)

	if res.Failed() {
		logger.InfoContext(cfg.Context(), "compilation failed",
			slog.Int("errors", diag.Count(res.Problems, diag.Error)))
	}
	return res, nil
}
