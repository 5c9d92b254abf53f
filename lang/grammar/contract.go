package grammar

import (
	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
	"github.com/dangerclosesec/iona/lang/model"
)

// ContractStage is a state of the contract machine
type ContractStage int

const (
	// ContractInitialized expects '::'
	ContractInitialized ContractStage = iota
	// ContractCondition collects the condition up to '->'
	ContractCondition
	// ContractMessage collects the failure message up to the end of the line
	ContractMessage
)

// Contract is the grammar for `#In :: condition -> "message"` and its #Out/#Invariant forms
type Contract struct {
	state
	Kind      model.ContractKind
	Stage     ContractStage
	Condition []lexer.Token
	Message   []lexer.Token
}

// NewContract creates a contract grammar for the given marker symbol
func NewContract(marker lexer.Symbol) *Contract {
	kind := model.Precondition
	switch marker {
	case lexer.ContractPost:
		kind = model.Postcondition
	case lexer.ContractInvariant:
		kind = model.Invariant
	}
	return &Contract{
		state: newState(),
		Kind:  kind,
		Stage: ContractInitialized,
	}
}

// Contract returns the model form of the parsed contract
func (g *Contract) Contract(line int) model.Contract {
	return model.Contract{
		Kind:      g.Kind,
		Condition: JoinText(g.Condition),
		Message:   JoinText(g.Message),
		Line:      line,
	}
}

// Step advances the state machine
func (g *Contract) Step(tok lexer.Token) *diag.Problem {
	if g.done {
		return nil
	}

	switch g.Stage {
	case ContractInitialized:
		if tok.Symbol != lexer.DoubleColon {
			return g.fail(fatal(tok, "expected '::' after '%s', but received %s", g.Kind, describe(tok)).
				WithHint("contracts are written as `" + g.Kind.String() + " :: condition -> \"message\"`"))
		}
		g.Stage = ContractCondition

	case ContractCondition:
		switch {
		case tok.Symbol == lexer.RightArrow:
			if len(g.Condition) == 0 {
				return g.fail(fatal(tok, "contract condition is missing"))
			}
			g.Stage = ContractMessage
		case tok.Symbol == lexer.Newline:
			return g.fail(fatal(tok, "contract needs a '->' followed by a message"))
		case AllowedExpressionSymbols[tok.Symbol]:
			g.Condition = append(g.Condition, tok)
		default:
			return g.fail(fatal(tok, "'%s' is not allowed in a contract condition", tok.Text))
		}

	case ContractMessage:
		if tok.Symbol == lexer.Newline {
			if len(g.Message) == 0 {
				return g.fail(fatal(tok, "contract message is missing"))
			}
			g.finish()
			return nil
		}
		g.Message = append(g.Message, tok)
	}
	return nil
}
