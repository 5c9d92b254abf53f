// File: parser/scope.go
package parser

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/grammar"
)

// ComputeScopes links every node to the line of its enclosing function in a single pass. It
// never removes nodes. Functions cannot nest, so the depth is at most one.
func ComputeScopes(nodes []Node) []diag.Problem {
	var problems []diag.Problem
	depth := 0
	anchor := 0

	for i := range nodes {
		n := &nodes[i]
		n.ParentLine = nil

		switch n.Type {
		case FunctionDeclaration:
			if depth > 0 {
				name := ""
				if fn, ok := n.Grammar.(*grammar.Function); ok {
					name = fn.Name
				}
				problems = append(problems, *diag.Newf(diag.Error, n.SourceLine, 0,
					"function '%s' is declared inside another function", name).
					WithHint("functions cannot be nested; close the enclosing function with '}' first"))
				n.ParentLine = lineRef(anchor)
				continue
			}
			depth++
			anchor = n.SourceLine

		case CloseScope:
			if depth == 0 {
				problems = append(problems, *diag.New(diag.Error, "unmatched closing brace", n.SourceLine, 0).
					WithHint("there is no open function for this '}' to close"))
				continue
			}
			n.ParentLine = lineRef(anchor)
			depth--

		default:
			if depth > 0 {
				n.ParentLine = lineRef(anchor)
			}
		}
	}
	return problems
}

func lineRef(line int) *int {
	return &line
}
