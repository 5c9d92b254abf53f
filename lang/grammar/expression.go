package grammar

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Expression is the grammar for a bare expression line, such as an effectful call
type Expression struct {
	state
	Tokens []lexer.Token

	str quoted
}

// NewExpression creates an expression grammar seeded with the line's leading token, which is
// part of the expression itself.
func NewExpression(lead lexer.Token) *Expression {
	g := &Expression{
		state:  newState(),
		Tokens: []lexer.Token{lead},
	}
	g.str.absorb(lead)
	return g
}

// Step advances the state machine
func (g *Expression) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}
	if tok.Symbol == lexer.Newline {
		g.finish()
		return nil
	}
	if !g.str.absorb(tok) && !AllowedExpressionSymbols[tok.Symbol] {
		return g.fail(fatal(tok, "'%s' is not allowed in an expression", tok.Text))
	}
	g.Tokens = append(g.Tokens, tok)
	return nil
}

// Return is the grammar for `return [value]`
type Return struct {
	state
	Values []lexer.Token

	str quoted
}

// NewReturn creates a return grammar. The `return` token is not fed to it.
func NewReturn() *Return {
	return &Return{state: newState()}
}

// Step advances the state machine
func (g *Return) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}
	if tok.Symbol == lexer.Newline {
		g.finish()
		return nil
	}
	if !g.str.absorb(tok) && BannedValueSymbols[tok.Symbol] {
		return g.fail(fatal(tok, "'%s' cannot be returned", tok.Text))
	}
	g.Values = append(g.Values, tok)
	return nil
}
