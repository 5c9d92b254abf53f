package grammar

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Comment is a comment line. The lexer folds the whole line into one token, so there is
// nothing left to consume.
type Comment struct {
	state
	Text string
}

// NewComment creates a finished comment grammar
func NewComment(tok lexer.Token) *Comment {
	g := &Comment{state: newState(), Text: tok.Text}
	g.finish()
	return g
}

// Step is a no-op
func (g *Comment) Step(lexer.Token) *diag.Problem { return nil }

// CloseScope marks a `}` line
type CloseScope struct {
	state
}

// NewCloseScope creates a finished scope close grammar
func NewCloseScope() *CloseScope {
	g := &CloseScope{state: newState()}
	g.finish()
	return g
}

// Step is a no-op
func (g *CloseScope) Step(lexer.Token) *diag.Problem { return nil }

// Empty absorbs a line that does not start any supported construct
type Empty struct {
	state
	Lead lexer.Token

	warned bool
}

// NewEmpty creates an empty grammar for a line led by tok
func NewEmpty(lead lexer.Token) *Empty {
	return &Empty{state: newState(), Lead: lead}
}

// Step consumes tokens up to the end of the line. The first step reports that the line is
// ignored.
func (g *Empty) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}
	if tok.Symbol == lexer.Newline {
		g.finish()
	}
	if g.warned {
		return nil
	}
	g.warned = true
	return diag.Newf(diag.Warning, g.Lead.Line, g.Lead.Word, "a line starting with '%s' is not a supported statement and was ignored", g.Lead.Text)
}
