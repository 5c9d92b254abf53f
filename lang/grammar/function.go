package grammar

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
)

// FunctionStage is a state of the function declaration machine
type FunctionStage int

const (
	// FunctionInitialized expects the function name
	FunctionInitialized FunctionStage = iota
	// FunctionNameProcessed expects '::' (has args) or '{' (no args)
	FunctionNameProcessed
	// FunctionSeekingArguments alternates between argument names, types and '->'
	FunctionSeekingArguments
	// FunctionSeekingBracket has the return type and expects '{'
	FunctionSeekingBracket
	// FunctionSeekingNewLine expects the line to end after '{'
	FunctionSeekingNewLine
)

// Function is the grammar for `fn name :: a T1 -> b T2 -> R {`
type Function struct {
	state
	Stage      FunctionStage
	Name       string
	Arguments  []model.Variable
	ReturnType model.DataType

	lastSymbol lexer.Symbol
	untyped    bool // the most recent argument has a name but no type yet
}

// NewFunction creates a function declaration grammar. The `fn` token is not fed to it.
func NewFunction() *Function {
	return &Function{
		state:      newState(),
		Stage:      FunctionInitialized,
		lastSymbol: lexer.FunctionDeclare,
		ReturnType: model.Void,
	}
}

// Step advances the state machine
func (g *Function) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}
	problem := g.transition(tok)
	g.lastSymbol = tok.Symbol
	return problem
}

func (g *Function) transition(tok lexer.Token) *diag.Problem {
	switch g.Stage {
	case FunctionInitialized:
		if tok.Symbol != lexer.Value {
			return g.fail(fatal(tok, "function name is missing").
				WithHint("functions are declared as `fn name :: arg type -> return_type {`"))
		}
		if !isASCII(tok.Text) {
			return g.fail(fatal(tok, "function name '%s' is not valid ASCII", tok.Text))
		}
		g.Name = tok.Text
		g.Stage = FunctionNameProcessed

	case FunctionNameProcessed:
		switch tok.Symbol {
		case lexer.BraceOpen:
			g.finish()
		case lexer.DoubleColon:
			g.Stage = FunctionSeekingArguments
		default:
			return g.fail(fatal(tok, "expected a '::' (if it has args) or a '{' (if it doesn't have args) after the function name, but received %s", describe(tok)))
		}

	case FunctionSeekingArguments:
		return g.seekArguments(tok)

	case FunctionSeekingBracket:
		if tok.Symbol != lexer.BraceOpen {
			return g.fail(fatal(tok, "expected '{', but received %s", describe(tok)).
				WithHint("check your function arguments"))
		}
		g.Stage = FunctionSeekingNewLine

	case FunctionSeekingNewLine:
		if tok.Symbol != lexer.Newline {
			return g.fail(fatal(tok, "expected a new line after '{', but received %s", describe(tok)).
				WithHint("a function body always starts on its own line"))
		}
		g.finish()
	}
	return nil
}

func (g *Function) seekArguments(tok lexer.Token) *diag.Problem {
	switch {
	// Right after :: or -> we need an argument name or the return type
	case g.lastSymbol == lexer.DoubleColon || g.lastSymbol == lexer.RightArrow:
		if dt, ok := DataTypeOf(tok.Symbol); ok {
			g.ReturnType = dt
			g.Stage = FunctionSeekingBracket
			return nil
		}
		if tok.Symbol == lexer.Value {
			g.Arguments = append(g.Arguments, model.Variable{Name: tok.Text, DataType: model.Void})
			g.untyped = true
			return nil
		}
		return g.fail(fatal(tok, "expected an argument name or a return type, but received %s", describe(tok)).
			WithHint("check your function arguments"))

	// Right after an argument name we need its type
	case g.untyped:
		arg := &g.Arguments[len(g.Arguments)-1]
		if tok.Symbol == lexer.TypeVoid {
			return g.fail(fatal(tok, "argument type for '%s' cannot be 'void'", arg.Name))
		}
		if dt, ok := DataTypeOf(tok.Symbol); ok {
			arg.DataType = dt
			g.untyped = false
			return nil
		}
		if tok.Symbol == lexer.RightArrow {
			arg.DataType = model.Auto
			g.untyped = false
			return diag.Newf(diag.Lint, tok.Line, tok.Word, "argument '%s' has no type, assuming 'auto'", arg.Name).
				WithHint("declare it as `" + arg.Name + " auto` to be explicit")
		}
		return g.fail(fatal(tok, "need a type for argument '%s'", arg.Name))

	// A complete name:type pair must be followed by ->
	default:
		if tok.Symbol != lexer.RightArrow {
			return g.fail(fatal(tok, "need a '->' after argument '%s'", g.Arguments[len(g.Arguments)-1].Name))
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
