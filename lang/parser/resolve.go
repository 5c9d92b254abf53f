// File: parser/resolve.go
package parser

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/expr"
	"github.com/dangerclosesec/iona/lang/grammar"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// ResolveExpressions parses the right-hand side of every expression, assignment and return
// node against a read-only arity view and attaches the result to Node.Value. A node whose
// expression fails keeps a nil Value and contributes one problem.
func ResolveExpressions(nodes []Node, arities expr.Arities) []diag.Problem {
	var problems []diag.Problem
	for i := range nodes {
		tokens := valueTokens(nodes[i])
		if len(tokens) == 0 {
			continue
		}
		obj, problem := expr.Parse(tokens, arities)
		if problem != nil {
			problems = append(problems, *problem)
			continue
		}
		nodes[i].Value = obj
	}
	return problems
}

func valueTokens(n Node) []lexer.Token {
	switch g := n.Grammar.(type) {
	case *grammar.Expression:
		return g.Tokens
	case *grammar.Assignment:
		return g.Values
	case *grammar.Return:
		return g.Values
	}
	return nil
}
