package grammar

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
)

// AssignmentKind says whether a variable is being created or changed
type AssignmentKind int

const (
	// Initialize is `let x ...`
	Initialize AssignmentKind = iota
	// Mutate is `set x ...`
	Mutate
)

func (k AssignmentKind) String() string {
	if k == Mutate {
		return "set"
	}
	return "let"
}

// AssignmentStage is a state of the variable assignment machine
type AssignmentStage int

const (
	// AssignmentFindingName expects the variable name
	AssignmentFindingName AssignmentStage = iota
	// AssignmentDeclaringType expects '::', '=' or '@'
	AssignmentDeclaringType
	// AssignmentSeekingIndex expects the subscript after '@'
	AssignmentSeekingIndex
	// AssignmentSeekingTypeName expects a type keyword or 'mut'
	AssignmentSeekingTypeName
	// AssignmentCheckingMutability expects 'mut' or '='
	AssignmentCheckingMutability
	// AssignmentHandlingValues collects the right-hand side up to the end of the line
	AssignmentHandlingValues
)

// Assignment is the grammar for `let name :: type [mut] = value` and `set name [@ index] = value`
type Assignment struct {
	state
	Kind     AssignmentKind
	Stage    AssignmentStage
	Name     string
	DataType model.DataType
	Mutable  bool
	Index    string
	Indexed  bool
	Values   []lexer.Token

	str quoted
}

// NewAssignment creates a variable assignment grammar. The `let`/`set` token is not fed to it.
func NewAssignment(kind AssignmentKind) *Assignment {
	return &Assignment{
		state:    newState(),
		Kind:     kind,
		Stage:    AssignmentFindingName,
		DataType: model.Auto,
	}
}

// Variable returns the assigned variable with the raw right-hand side as its value
func (g *Assignment) Variable() model.Variable {
	return model.Variable{
		Name:     g.Name,
		DataType: g.DataType,
		Value:    JoinText(g.Values),
		HasValue: len(g.Values) > 0,
	}
}

// Step advances the state machine
func (g *Assignment) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}

	switch g.Stage {
	case AssignmentFindingName:
		if tok.Symbol != lexer.Value {
			return g.fail(fatal(tok, "variable name is missing after '%s', received %s", g.Kind, describe(tok)))
		}
		g.Name = tok.Text
		g.Stage = AssignmentDeclaringType

	case AssignmentDeclaringType:
		switch tok.Symbol {
		case lexer.DoubleColon:
			g.Stage = AssignmentSeekingTypeName
		case lexer.EqualSign:
			g.Stage = AssignmentHandlingValues
			if g.Kind == Initialize {
				return diag.Newf(diag.Lint, tok.Line, tok.Word, "the type of '%s' is implied", g.Name).
					WithHint("use `let " + g.Name + " :: auto = ...` to be explicit")
			}
		case lexer.At:
			if g.Kind == Initialize {
				return g.fail(fatal(tok, "cannot index into '%s' while declaring it", g.Name).
					WithHint("a variable has no elements until it is initialized; use `set " + g.Name + " @ index = ...` after the `let`"))
			}
			if g.Indexed {
				return g.fail(fatal(tok, "'%s' is already indexed", g.Name))
			}
			g.Stage = AssignmentSeekingIndex
		default:
			return g.fail(fatal(tok, "expected '::', '=' or '@' after '%s', but received %s", g.Name, describe(tok)))
		}

	case AssignmentSeekingIndex:
		if tok.Symbol != lexer.Value {
			return g.fail(fatal(tok, "expected an index after '@', but received %s", describe(tok)))
		}
		g.Index = tok.Text
		g.Indexed = true
		g.Stage = AssignmentDeclaringType

	case AssignmentSeekingTypeName:
		if tok.Symbol == lexer.Mut {
			g.Mutable = true
			g.Stage = AssignmentCheckingMutability
			return diag.Newf(diag.Lint, tok.Line, tok.Word, "'%s' is mutable but its type is implied", g.Name).
				WithHint("use `:: auto mut` to be explicit")
		}
		dt, ok := DataTypeOf(tok.Symbol)
		if !ok {
			return g.fail(fatal(tok, "expected a type for '%s', but received %s", g.Name, describe(tok)))
		}
		if dt == model.Void {
			return g.fail(fatal(tok, "variable '%s' cannot be 'void'", g.Name))
		}
		g.DataType = dt
		g.Stage = AssignmentCheckingMutability

	case AssignmentCheckingMutability:
		switch {
		case tok.Symbol == lexer.Mut && !g.Mutable:
			g.Mutable = true
		case tok.Symbol == lexer.EqualSign:
			g.Stage = AssignmentHandlingValues
		default:
			return g.fail(fatal(tok, "expected '=' after the type of '%s', but received %s", g.Name, describe(tok)))
		}

	case AssignmentHandlingValues:
		if tok.Symbol == lexer.Newline {
			if len(g.Values) == 0 {
				return g.fail(fatal(tok, "missing value for '%s'", g.Name).
					WithHint("provide a value or call a function after '='"))
			}
			g.finish()
			return nil
		}
		if !g.str.absorb(tok) && BannedValueSymbols[tok.Symbol] {
			return g.fail(fatal(tok, "'%s' cannot be used as a value", tok.Text))
		}
		g.Values = append(g.Values, tok)
	}
	return nil
}
