// Package expr parses the right-hand side of a line into an operator tree.
//
// Every named function is a prefix operation with a fixed arity, so a prefix line is built by
// a single right-to-left stack reduction: operands are pushed, operators pop their arity.
// A line led by a value may also use the binary operators infix, folded by binding power.
package expr

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/iona/lang/diag"
	"github.com/dangerclosesec/iona/lang/lexer"
)

// Arities resolves function names to their declared argument counts
type Arities interface {
	Arity(name string) (int, bool)
}

// Object is either an Operation or a Value
type Object interface {
	String() string
	object()
}

// Operation applies an operator to its arguments
type Operation struct {
	Op   Operator
	Args []Object
}

func (o *Operation) String() string {
	parts := make([]string, 0, len(o.Args)+1)
	parts = append(parts, o.Op.String())
	for _, arg := range o.Args {
		parts = append(parts, arg.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// BindingPower returns the binding power of the operation's operator
func (o *Operation) BindingPower() int {
	return o.Op.BindingPower()
}

func (o *Operation) object() {}

// Value wraps a literal operand
type Value struct {
	Literal Literal
}

func (v *Value) String() string {
	return v.Literal.String()
}

func (v *Value) object() {}

// Parse reduces one line's expression tokens to a single object. arities is a read-only view
// of the functions known when the expression is parsed; a function it does not know is
// treated as a plain value.
//
// A line led by an operator or a known function is prefix notation. A line led by a value
// may use binary infix operators, which group by binding power: `a + b * c` is
// (+ a (* b c)). Each operand between infix operators is itself an expression.
func Parse(tokens []lexer.Token, arities Arities) (Object, *diag.Problem) {
	if len(tokens) == 0 {
		return nil, diag.New(diag.Error, "expression has no tokens", 0, 0).
			WithHint("make sure to provide a value or call a function here")
	}
	if p := checkParentheses(tokens); p != nil {
		return nil, p
	}
	return parse(MergeStrings(tokens), tokens[0], arities)
}

// parse handles one expression or operand. at locates problems when tokens is empty.
func parse(tokens []lexer.Token, at lexer.Token, arities Arities) (Object, *diag.Problem) {
	tokens = stripGroup(tokens)
	if len(tokens) == 0 {
		return nil, diag.New(diag.Error, "empty expression", at.Line, at.Word).
			WithHint("make sure to provide a value or call a function here")
	}
	if isInfix(tokens, arities) {
		if splits := infixOperators(tokens); len(splits) > 0 {
			return parseInfix(tokens, splits, arities)
		}
	}
	return parsePrefix(tokens, arities)
}

// parsePrefix is the right-to-left stack reduction: operands are pushed, operators and calls
// pop their arity.
func parsePrefix(tokens []lexer.Token, arities Arities) (Object, *diag.Problem) {
	stack := make([]Object, 0, len(tokens))
	for i := len(tokens) - 1; i >= 0; i-- {
		tok := tokens[i]

		switch tok.Symbol {
		case lexer.ParenOpen, lexer.ParenClose:
			// Grouping is implied by arity in prefix notation
			continue
		case lexer.Value:
			if n, ok := arities.Arity(tok.Text); ok {
				var p *diag.Problem
				stack, p = reduce(stack, tok, Function(tok.Text), n)
				if p != nil {
					return nil, p
				}
				continue
			}
			lit, p := ParseLiteral(tok.Text)
			if p != nil {
				return nil, p.At(tok.Line, tok.Word)
			}
			stack = append(stack, &Value{Literal: lit})
		default:
			op, ok := FromSymbol(tok.Symbol)
			if !ok {
				return nil, unimplemented(tok)
			}
			var p *diag.Problem
			stack, p = reduce(stack, tok, op, op.Arity())
			if p != nil {
				return nil, p
			}
		}
	}

	switch len(stack) {
	case 0:
		return nil, diag.New(diag.Error, "empty expression", tokens[0].Line, tokens[0].Word).
			WithHint("make sure to provide a value or call a function here")
	case 1:
		return stack[0], nil
	default:
		last := tokens[len(tokens)-1]
		return nil, diag.Newf(diag.Error, last.Line, last.Word, "too many arguments, %d values were left unused", len(stack)-1).
			WithHint("you have probably passed too many arguments to a function")
	}
}

// parseInfix splits tokens at the given top-level operators and folds the operands with
// operator precedence. Equal binding power associates to the left.
func parseInfix(tokens []lexer.Token, splits []int, arities Arities) (Object, *diag.Problem) {
	var operands []Object
	var ops []Operator

	fold := func() {
		n := len(operands)
		op := &Operation{Op: ops[len(ops)-1], Args: []Object{operands[n-2], operands[n-1]}}
		operands = append(operands[:n-2], op)
		ops = ops[:len(ops)-1]
	}

	from := 0
	for k := 0; k <= len(splits); k++ {
		to := len(tokens)
		if k < len(splits) {
			to = splits[k]
		}
		segment := tokens[from:to]
		if len(segment) == 0 {
			// Only the right side can be empty: splits never start the line or follow each other
			tok := tokens[splits[k-1]]
			return nil, diag.Newf(diag.Error, tok.Line, tok.Word, "not enough arguments for function %s", tok.Text).
				WithHint(fmt.Sprintf("'%s' needs a value on both sides", tok.Text))
		}
		operand, p := parse(segment, segment[0], arities)
		if p != nil {
			return nil, p
		}
		operands = append(operands, operand)
		if k == len(splits) {
			break
		}

		tok := tokens[to]
		op, _ := FromSymbol(tok.Symbol)
		for len(ops) > 0 && ops[len(ops)-1].BindingPower() >= op.BindingPower() {
			fold()
		}
		ops = append(ops, op)
		from = to + 1
	}
	for len(ops) > 0 {
		fold()
	}
	return operands[0], nil
}

// isInfix reports whether the expression is led by a plain value rather than an operator or
// a function call
func isInfix(tokens []lexer.Token, arities Arities) bool {
	for _, tok := range tokens {
		switch tok.Symbol {
		case lexer.ParenOpen:
			continue
		case lexer.Value:
			_, known := arities.Arity(tok.Text)
			return !known
		}
		return false
	}
	return false
}

// infixOperators returns the indexes of the binary operators outside parentheses that have
// an operand on their left
func infixOperators(tokens []lexer.Token) []int {
	var splits []int
	depth := 0
	for i, tok := range tokens {
		switch tok.Symbol {
		case lexer.ParenOpen:
			depth++
			continue
		case lexer.ParenClose:
			depth--
			continue
		}
		if _, ok := FromSymbol(tok.Symbol); !ok || depth > 0 || i == 0 {
			continue
		}
		prev := tokens[i-1].Symbol
		if _, isOp := FromSymbol(prev); isOp || prev == lexer.ParenOpen {
			continue
		}
		splits = append(splits, i)
	}
	return splits
}

// stripGroup removes parentheses wrapping the whole expression
func stripGroup(tokens []lexer.Token) []lexer.Token {
	for len(tokens) >= 2 && tokens[0].Symbol == lexer.ParenOpen && closing(tokens) == len(tokens)-1 {
		tokens = tokens[1 : len(tokens)-1]
	}
	return tokens
}

// closing returns the index of the parenthesis matching tokens[0], or -1
func closing(tokens []lexer.Token) int {
	depth := 0
	for i, tok := range tokens {
		switch tok.Symbol {
		case lexer.ParenOpen:
			depth++
		case lexer.ParenClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func unimplemented(tok lexer.Token) *diag.Problem {
	return diag.Newf(diag.Error, tok.Line, tok.Word, "unimplemented symbol '%s' found in expression", tok.Text).
		WithHint("only values, function calls and + - * / are supported in expressions")
}

// MergeStrings joins the words of a quoted string, which the lexer splits on spaces, back into
// one Value token located at its first word. The words are joined with single spaces. A string
// that is never closed is left split so the literal parser reports it.
func MergeStrings(tokens []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !OpensString(tok.Text) {
			out = append(out, tok)
			continue
		}
		end := -1
		for j := i + 1; j < len(tokens); j++ {
			if strings.HasSuffix(tokens[j].Text, `"`) {
				end = j
				break
			}
		}
		if end < 0 {
			out = append(out, tok)
			continue
		}
		words := make([]string, 0, end-i+1)
		for _, t := range tokens[i : end+1] {
			words = append(words, t.Text)
		}
		tok.Text = strings.Join(words, " ")
		tok.Symbol = lexer.Value
		out = append(out, tok)
		i = end
	}
	return out
}

// OpensString reports whether a word starts a string literal that continues into the next word
func OpensString(text string) bool {
	if !strings.HasPrefix(text, `"`) {
		return false
	}
	return len(text) == 1 || !strings.HasSuffix(text, `"`)
}

// reduce pops n objects off the stack into a new operation and pushes it back. The top of the
// stack is the leftmost argument.
func reduce(stack []Object, tok lexer.Token, op Operator, n int) ([]Object, *diag.Problem) {
	if len(stack) < n {
		return stack, diag.Newf(diag.Error, tok.Line, tok.Word, "not enough arguments for function %s", tok.Text).
			WithHint(fmt.Sprintf("'%s' takes %d argument(s) but only %d were provided; partial functions are not supported", tok.Text, n, len(stack)))
	}
	args := make([]Object, n)
	for i := 0; i < n; i++ {
		args[i] = stack[len(stack)-1-i]
	}
	stack = stack[:len(stack)-n]
	return append(stack, &Operation{Op: op, Args: args}), nil
}

func checkParentheses(tokens []lexer.Token) *diag.Problem {
	depth := 0
	for _, tok := range tokens {
		switch tok.Symbol {
		case lexer.ParenOpen:
			depth++
		case lexer.ParenClose:
			depth--
			if depth < 0 {
				return diag.New(diag.Error, "unbalanced parentheses, ')' has no matching '('", tok.Line, tok.Word)
			}
		}
	}
	if depth > 0 {
		last := tokens[len(tokens)-1]
		return diag.Newf(diag.Error, last.Line, last.Word, "unbalanced parentheses, %d '(' never closed", depth)
	}
	return nil
}
