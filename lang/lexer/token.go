// File: lexer/token.go
package lexer

import "fmt"

// Token represents a lexical token. Line and Word are zero-based; Word counts tokens within
// the line, including the trailing Newline.
type Token struct {
	Text   string
	Symbol Symbol
	Line   int
	Word   int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) %d:%d", t.Symbol, t.Text, t.Line, t.Word)
}

// Symbol is the lexical category of a token
type Symbol int

// Symbols
const (
	Value Symbol = iota

	// Structural punctuation
	DoubleColon      // ::
	RightArrow       // ->
	EqualSign        // =
	DoubleEqualSign  // ==
	BraceOpen        // {
	BraceClose       // }
	ParenOpen        // (
	ParenClose       // )
	At               // @

	// Arithmetic and comparison operators
	Plus  // +
	Minus // -
	Slash // /
	Star  // *
	Hat   // ^
	Gt    // >
	Lt    // <
	Gte   // >=
	Lte   // <=

	// Statement keywords
	FunctionDeclare
	Import
	From
	Let
	Set
	Mut
	Return
	If
	Else

	// Type keywords
	TypeInt
	TypeFloat
	TypeStr
	TypeBool
	TypeVoid
	TypeAuto

	// Annotation markers
	PropertyDeclaration
	PermissionsDeclaration
	ContractPre
	ContractPost
	ContractInvariant

	Comment
	Newline
)

var symbolNames = [...]string{
	Value:                  "Value",
	DoubleColon:            "DoubleColon",
	RightArrow:             "RightArrow",
	EqualSign:              "EqualSign",
	DoubleEqualSign:        "DoubleEqualSign",
	BraceOpen:              "BraceOpen",
	BraceClose:             "BraceClose",
	ParenOpen:              "ParenOpen",
	ParenClose:             "ParenClose",
	At:                     "At",
	Plus:                   "Plus",
	Minus:                  "Minus",
	Slash:                  "Slash",
	Star:                   "Star",
	Hat:                    "Hat",
	Gt:                     "Gt",
	Lt:                     "Lt",
	Gte:                    "Gte",
	Lte:                    "Lte",
	FunctionDeclare:        "FunctionDeclare",
	Import:                 "Import",
	From:                   "From",
	Let:                    "Let",
	Set:                    "Set",
	Mut:                    "Mut",
	Return:                 "Return",
	If:                     "If",
	Else:                   "Else",
	TypeInt:                "TypeInt",
	TypeFloat:              "TypeFloat",
	TypeStr:                "TypeStr",
	TypeBool:               "TypeBool",
	TypeVoid:               "TypeVoid",
	TypeAuto:               "TypeAuto",
	PropertyDeclaration:    "PropertyDeclaration",
	PermissionsDeclaration: "PermissionsDeclaration",
	ContractPre:            "ContractPre",
	ContractPost:           "ContractPost",
	ContractInvariant:      "ContractInvariant",
	Comment:                "Comment",
	Newline:                "Newline",
}

func (s Symbol) String() string {
	if s >= 0 && int(s) < len(symbolNames) {
		return symbolNames[s]
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// IsType reports whether the symbol is a type keyword
func (s Symbol) IsType() bool {
	return s >= TypeInt && s <= TypeAuto
}

// IsOperator reports whether the symbol is an arithmetic or comparison operator
func (s Symbol) IsOperator() bool {
	return (s >= Plus && s <= Lte) || s == DoubleEqualSign
}

// Keywords maps literal text to its symbol. Anything missing is a Value.
var Keywords = map[string]Symbol{
	"::":           DoubleColon,
	"->":           RightArrow,
	"=":            EqualSign,
	"==":           DoubleEqualSign,
	"{":            BraceOpen,
	"}":            BraceClose,
	"(":            ParenOpen,
	")":            ParenClose,
	"@":            At,
	"+":            Plus,
	"-":            Minus,
	"/":            Slash,
	"*":            Star,
	"^":            Hat,
	">":            Gt,
	"<":            Lt,
	">=":           Gte,
	"<=":           Lte,
	"fn":           FunctionDeclare,
	"import":       Import,
	"from":         From,
	"let":          Let,
	"set":          Set,
	"mut":          Mut,
	"return":       Return,
	"if":           If,
	"else":         Else,
	"int":          TypeInt,
	"float":        TypeFloat,
	"str":          TypeStr,
	"bool":         TypeBool,
	"void":         TypeVoid,
	"auto":         TypeAuto,
	"#Properties":  PropertyDeclaration,
	"#Permissions": PermissionsDeclaration,
	"#In":          ContractPre,
	"#Out":         ContractPost,
	"#Invariant":   ContractInvariant,
	"//":           Comment,
	"\n":           Newline,
}

// Identify classifies literal text. It is a pure function of the text.
func Identify(text string) Symbol {
	if sym, ok := Keywords[text]; ok {
		return sym
	}
	return Value
}
