// File: parser/parser.go
package parser

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/grammar"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Parser drives the per-line grammars over a token stream
type Parser struct {
	tokens   []lexer.Token
	pos      int
	nodes    []Node
	problems []diag.Problem
}

// NewParser creates a new Parser
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:   tokens,
		nodes:    []Node{},
		problems: []diag.Problem{},
	}
}

// Parse turns a token stream into nodes. Every problem is returned; a line only produces a
// node when none of its problems is an Error.
func Parse(tokens []lexer.Token) ([]Node, []diag.Problem) {
	p := NewParser(tokens)
	p.ParseAll()
	return p.nodes, p.problems
}

// Nodes returns the nodes parsed so far
func (p *Parser) Nodes() []Node {
	return p.nodes
}

// Problems returns the problems found so far
func (p *Parser) Problems() []diag.Problem {
	return p.problems
}

// ParseAll consumes the remaining tokens
func (p *Parser) ParseAll() {
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Symbol == lexer.Newline {
			p.pos++
			continue
		}
		p.parseLine()
	}
}

// parseLine instantiates the grammar for the token at the cursor and feeds it until it is done
func (p *Parser) parseLine() {
	lead := p.tokens[p.pos]
	p.pos++

	nodeType, g := selectGrammar(lead)
	fatal := false
	last := lead

	for !g.Done() {
		var tok lexer.Token
		if p.pos < len(p.tokens) {
			tok = p.tokens[p.pos]
			p.pos++
		} else {
			// The input ran out mid-construct, so end the line for it
			tok = lexer.Token{Text: "\n", Symbol: lexer.Newline, Line: last.Line, Word: last.Word + 1}
		}
		last = tok

		if problem := g.Step(tok); problem != nil {
			p.problems = append(p.problems, *problem)
			fatal = fatal || problem.Fatal()
		}
	}

	if fatal || !g.Valid() {
		p.skipLine(last)
		return
	}

	p.nodes = append(p.nodes, Node{
		Type:       nodeType,
		Grammar:    g,
		SourceLine: lead.Line,
	})
}

// skipLine drops whatever is left of a malformed line so its leftovers are not dispatched as
// new constructs
func (p *Parser) skipLine(failed lexer.Token) {
	if failed.Symbol == lexer.Newline {
		return
	}
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		if tok.Line != failed.Line || tok.Symbol == lexer.Newline {
			return
		}
		p.pos++
	}
}

// selectGrammar picks the grammar for a line from its leading token
func selectGrammar(lead lexer.Token) (NodeType, grammar.Grammar) {
	switch lead.Symbol {
	case lexer.Import:
		return ImportStatement, grammar.NewImport()
	case lexer.FunctionDeclare:
		return FunctionDeclaration, grammar.NewFunction()
	case lexer.PropertyDeclaration:
		return PropertyDeclaration, grammar.NewProperties()
	case lexer.PermissionsDeclaration:
		return PermissionsDeclaration, grammar.NewPermissions()
	case lexer.Let:
		return VariableAssignment, grammar.NewAssignment(grammar.Initialize)
	case lexer.Set:
		return VariableAssignment, grammar.NewAssignment(grammar.Mutate)
	case lexer.ContractPre, lexer.ContractPost, lexer.ContractInvariant:
		return ContractDeclaration, grammar.NewContract(lead.Symbol)
	case lexer.Return:
		return ReturnStatement, grammar.NewReturn()
	case lexer.BraceClose:
		return CloseScope, grammar.NewCloseScope()
	case lexer.Comment:
		return Comment, grammar.NewComment(lead)
	}
	if grammar.AllowedExpressionSymbols[lead.Symbol] {
		return Expression, grammar.NewExpression(lead)
	}
	return Empty, grammar.NewEmpty(lead)
}
