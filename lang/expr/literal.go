package expr

import (
	"strconv"
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/model"
)

// LiteralKind says what a literal token turned out to be
type LiteralKind int

const (
	Bool LiteralKind = iota
	Str
	Int
	Float
	// Symbol is a reference to a named value such as a local or an argument
	Symbol
)

// Literal is a constant operand
type Literal struct {
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Text  string
}

func (l Literal) String() string {
	switch l.Kind {
	case Bool:
		return strconv.FormatBool(l.Bool)
	case Int:
		return strconv.FormatInt(l.Int, 10)
	case Float:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	default:
		return l.Text
	}
}

// DataType returns the primitive type of the literal, Auto for symbol references
func (l Literal) DataType() model.DataType {
	switch l.Kind {
	case Bool:
		return model.Bool
	case Str:
		return model.Str
	case Int:
		return model.Int
	case Float:
		return model.Float
	default:
		return model.Auto
	}
}

// ParseLiteral converts token text to a literal, trying bool, string, int and float in that
// order, then falling back to a symbol reference for identifiers. The returned problem has no
// location.
func ParseLiteral(text string) (Literal, *diag.Problem) {
	switch text {
	case "true":
		return Literal{Kind: Bool, Bool: true, Text: text}, nil
	case "false":
		return Literal{Kind: Bool, Bool: false, Text: text}, nil
	}

	opened := strings.HasPrefix(text, `"`)
	closed := len(text) > 1 && strings.HasSuffix(text, `"`)
	switch {
	case opened && closed:
		return Literal{Kind: Str, Text: text}, nil
	case opened:
		return Literal{}, diag.New(diag.Error, "a string literal has an unclosed quote", 0, 0).
			WithHint("if this isn't a string, remove the opening quote, otherwise close it")
	case strings.HasSuffix(text, `"`):
		return Literal{}, diag.New(diag.Error, "a string literal has an unopened quote", 0, 0).
			WithHint("if this isn't a string, remove the closing quote, otherwise open it")
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Literal{Kind: Int, Int: n, Text: text}, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && looksNumeric(text) {
		return Literal{Kind: Float, Float: f, Text: text}, nil
	}
	if isIdentifier(text) {
		return Literal{Kind: Symbol, Text: text}, nil
	}

	return Literal{}, diag.Newf(diag.Error, 0, 0, "unrecognized value '%s'", text).
		WithHint("check for syntax errors")
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// looksNumeric rejects the spellings ParseFloat accepts that are really identifiers, like
// "inf" or "nan"
func looksNumeric(s string) bool {
	c := s[0]
	if c == '-' || c == '+' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return c == '.' || (c >= '0' && c <= '9')
}
