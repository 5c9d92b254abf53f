package expr

import "github.com/dangerclosesec/iona/lang/lexer"

// OperatorKind enumerates the built-in operators
type OperatorKind int

const (
	Add OperatorKind = iota
	Subtract
	Multiply
	Divide
	Negate
	Inverse
	Call
)

// Operator is an operation head. Name is only set for Call.
type Operator struct {
	Kind OperatorKind
	Name string
}

// Function returns the operator calling a named function
func Function(name string) Operator {
	return Operator{Kind: Call, Name: name}
}

// Binding powers. The reduction does not consult them yet; they are kept stable per operator
// for infix parsing.
const (
	CallPower           = 10
	AdditivePower       = 20
	MultiplicativePower = 30
	UnaryPower          = 40
)

// BindingPower returns the precedence weight of the operator
func (o Operator) BindingPower() int {
	switch o.Kind {
	case Add, Subtract:
		return AdditivePower
	case Multiply, Divide:
		return MultiplicativePower
	case Negate, Inverse:
		return UnaryPower
	default:
		return CallPower
	}
}

// Arity returns the fixed argument count of a built-in operator. Calls take their arity from
// the function table instead.
func (o Operator) Arity() int {
	switch o.Kind {
	case Negate, Inverse:
		return 1
	case Call:
		return 0
	default:
		return 2
	}
}

func (o Operator) String() string {
	switch o.Kind {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Negate:
		return "neg"
	case Inverse:
		return "inv"
	default:
		return o.Name
	}
}

// FromSymbol maps an operator token to its operator
func FromSymbol(sym lexer.Symbol) (Operator, bool) {
	switch sym {
	case lexer.Plus:
		return Operator{Kind: Add}, true
	case lexer.Minus:
		return Operator{Kind: Subtract}, true
	case lexer.Star:
		return Operator{Kind: Multiply}, true
	case lexer.Slash:
		return Operator{Kind: Divide}, true
	}
	return Operator{}, false
}
