// File: parser/fused.go
package parser

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Fragment is the line-local result of lexing and parsing some contiguous run of lines
type Fragment struct {
	Tokens   []lexer.Token
	Nodes    []Node
	Problems []diag.Problem
}

// Merge concatenates other after f. Merge is associative, so fragments can be folded in any
// grouping as long as their order is kept.
func (f Fragment) Merge(other Fragment) Fragment {
	return Fragment{
		Tokens:   append(append([]lexer.Token(nil), f.Tokens...), other.Tokens...),
		Nodes:    append(append([]Node(nil), f.Nodes...), other.Nodes...),
		Problems: append(append([]diag.Problem(nil), f.Problems...), other.Problems...),
	}
}

// LexAndParse is the sequential path: Parse(Lex(text))
func LexAndParse(text string) Fragment {
	tokens := lexer.Lex(text)
	nodes, problems := Parse(tokens)
	return Fragment{Tokens: tokens, Nodes: nodes, Problems: problems}
}

// Fused lexes and parses every physical line independently on up to workers goroutines and
// concatenates the results in line order. Grammars never span lines, so the result matches
// LexAndParse. A non-positive workers uses GOMAXPROCS.
func Fused(text string, workers int) Fragment {
	lines := lexer.SplitLines(text)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	parts := make([]Fragment, len(lines))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, line := range lines {
		g.Go(func() error {
			tokens := lexer.LexLine(line, i, i+1 < len(lines))
			nodes, problems := Parse(tokens)
			parts[i] = Fragment{Tokens: tokens, Nodes: nodes, Problems: problems}
			return nil
		})
	}
	// Line tasks cannot fail
	_ = g.Wait()

	var out Fragment
	for _, part := range parts {
		out.Tokens = append(out.Tokens, part.Tokens...)
		out.Nodes = append(out.Nodes, part.Nodes...)
		out.Problems = append(out.Problems, part.Problems...)
	}
	return out
}

// FusedLexAndParse is Fused without the tokens
func FusedLexAndParse(text string, workers int) ([]Node, []diag.Problem) {
	f := Fused(text, workers)
	return f.Nodes, f.Problems
}
