package grammar

import (
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// ImportStage is a state of the import machine
type ImportStage int

const (
	// ImportInitialized expects a file (contains '.') or the first imported name
	ImportInitialized ImportStage = iota
	// ImportProcessingArguments collects names until 'from'
	ImportProcessingArguments
	// ImportProcessingFile expects exactly one file name and then the end of the line
	ImportProcessingFile
)

// Import is the grammar for `import std.files` and `import read write from std.files`
type Import struct {
	state
	Stage ImportStage
	Items []string
	File  string
}

// NewImport creates an import grammar. The `import` token is not fed to it.
func NewImport() *Import {
	return &Import{state: newState(), Stage: ImportInitialized}
}

// Step advances the state machine
func (g *Import) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}

	switch g.Stage {
	case ImportInitialized:
		if tok.Symbol != lexer.Value {
			return g.fail(fatal(tok, "expected a file or a name to import, but received %s", describe(tok)))
		}
		if strings.Contains(tok.Text, ".") {
			// Bare file import
			g.File = tok.Text
			g.finish()
			return nil
		}
		g.Items = append(g.Items, tok.Text)
		g.Stage = ImportProcessingArguments

	case ImportProcessingArguments:
		switch tok.Symbol {
		case lexer.Value:
			g.Items = append(g.Items, tok.Text)
		case lexer.From:
			g.Stage = ImportProcessingFile
		default:
			return g.fail(fatal(tok, "expected another name or 'from', but received %s", describe(tok)).
				WithHint("imports are written as `import a b from file`"))
		}

	case ImportProcessingFile:
		switch {
		case tok.Symbol == lexer.Value && g.File == "":
			g.File = tok.Text
		case tok.Symbol == lexer.Newline && g.File != "":
			g.finish()
		case tok.Symbol == lexer.Newline:
			return g.fail(fatal(tok, "missing file name after 'from'"))
		default:
			return g.fail(fatal(tok, "expected exactly one file after 'from', but received %s", describe(tok)))
		}
	}
	return nil
}
