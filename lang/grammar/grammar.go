// Package grammar defines the permissible token sequence of every kind of line.
//
// Each grammar is a small state machine. The language is strictly line structured, so a line
// belongs to exactly one grammar and can be validated independently of its neighbours.
package grammar

import (
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
)

// Grammar is a per-construct state machine. The set of grammars is closed: every
// implementation lives in this package.
type Grammar interface {
	// Step consumes exactly one token and returns at most one problem for it. Once the
	// grammar is done, Step is a no-op that returns nil.
	Step(tok lexer.Token) *diag.Problem
	// Done reports whether a terminal state has been reached
	Done() bool
	// Valid reports whether no fatal problem was encountered
	Valid() bool

	grammar()
}

// state carries the fields common to all grammars
type state struct {
	done  bool
	valid bool
}

func newState() state {
	return state{valid: true}
}

func (s *state) Done() bool  { return s.done }
func (s *state) Valid() bool { return s.valid }
func (s *state) grammar()    {}

// fail terminates the grammar as invalid. Error-class problems always go through here.
func (s *state) fail(p *diag.Problem) *diag.Problem {
	s.done = true
	s.valid = false
	return p
}

func (s *state) finish() {
	s.done = true
}

func fatal(tok lexer.Token, format string, args ...any) *diag.Problem {
	return diag.Newf(diag.Error, tok.Line, tok.Word, format, args...)
}

// AllowedExpressionSymbols are the symbols that may appear in an expression line
var AllowedExpressionSymbols = map[lexer.Symbol]bool{
	lexer.Value:           true,
	lexer.Plus:            true,
	lexer.Minus:           true,
	lexer.Slash:           true,
	lexer.Star:            true,
	lexer.Hat:             true,
	lexer.Gt:              true,
	lexer.Lt:              true,
	lexer.Gte:             true,
	lexer.Lte:             true,
	lexer.DoubleEqualSign: true,
	lexer.At:              true,
	lexer.ParenOpen:       true,
	lexer.ParenClose:      true,
}

// BannedValueSymbols can never appear on the right-hand side of an assignment or return
var BannedValueSymbols = map[lexer.Symbol]bool{
	lexer.FunctionDeclare:        true,
	lexer.Import:                 true,
	lexer.From:                   true,
	lexer.Let:                    true,
	lexer.Set:                    true,
	lexer.Mut:                    true,
	lexer.Return:                 true,
	lexer.If:                     true,
	lexer.Else:                   true,
	lexer.EqualSign:              true,
	lexer.DoubleColon:            true,
	lexer.RightArrow:             true,
	lexer.BraceOpen:              true,
	lexer.BraceClose:             true,
	lexer.TypeInt:                true,
	lexer.TypeFloat:              true,
	lexer.TypeStr:                true,
	lexer.TypeBool:               true,
	lexer.TypeVoid:               true,
	lexer.TypeAuto:               true,
	lexer.PropertyDeclaration:    true,
	lexer.PermissionsDeclaration: true,
	lexer.ContractPre:            true,
	lexer.ContractPost:           true,
	lexer.ContractInvariant:      true,
	lexer.Comment:                true,
}

// DataTypeOf maps a type keyword to its data type
func DataTypeOf(sym lexer.Symbol) (model.DataType, bool) {
	switch sym {
	case lexer.TypeInt:
		return model.Int, true
	case lexer.TypeFloat:
		return model.Float, true
	case lexer.TypeStr:
		return model.Str, true
	case lexer.TypeBool:
		return model.Bool, true
	case lexer.TypeVoid:
		return model.Void, true
	case lexer.TypeAuto:
		return model.Auto, true
	}
	return model.Void, false
}

// JoinText joins token texts with single spaces
func JoinText(tokens []lexer.Token) string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return strings.Join(texts, " ")
}

// quoted tracks whether a run of value tokens is inside a string literal. The lexer splits
// strings on spaces, so the words of one string arrive as separate tokens.
type quoted struct {
	open bool
}

// absorb reports whether tok belongs to a string literal, updating the open state. A Newline
// is never absorbed.
func (q *quoted) absorb(tok lexer.Token) bool {
	if tok.Symbol == lexer.Newline {
		return false
	}
	if q.open {
		if strings.HasSuffix(tok.Text, `"`) {
			q.open = false
		}
		return true
	}
	if strings.HasPrefix(tok.Text, `"`) {
		q.open = len(tok.Text) == 1 || !strings.HasSuffix(tok.Text, `"`)
		return true
	}
	return false
}

// describe renders a token for error messages
func describe(tok lexer.Token) string {
	if tok.Symbol == lexer.Newline {
		return "the end of the line"
	}
	return "'" + tok.Text + "'"
}
