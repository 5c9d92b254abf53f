// File: lexer/lexer.go
package lexer

import (
	"strings"
)

// Lexer splits source text into line and word addressed tokens. It never fails: text it
// cannot classify becomes Value tokens for the grammars to diagnose.
type Lexer struct {
	tokens []Token
	line   int // current zero-based source line
	word   int // next word index within the line
}

// NewLexer creates a new Lexer
func NewLexer() *Lexer {
	return &Lexer{}
}

// Lex tokenizes a whole source text. Every physical line ends with a Newline token except
// the last.
func Lex(input string) []Token {
	lines := SplitLines(input)
	l := NewLexer()
	for i, line := range lines {
		l.lexLine(line, i, i+1 < len(lines))
	}
	return l.tokens
}

// LexLine tokenizes one physical line at the given index. withNewline controls whether the
// line's trailing Newline token is emitted.
func LexLine(line string, index int, withNewline bool) []Token {
	l := NewLexer()
	l.lexLine(line, index, withNewline)
	return l.tokens
}

// SplitLines splits text into physical lines the way Lex sees them: "\n" separated, a
// trailing "\r" dropped, and no empty line produced after a final newline.
func SplitLines(input string) []string {
	if input == "" {
		return nil
	}
	lines := strings.Split(input, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func (l *Lexer) lexLine(line string, index int, withNewline bool) {
	l.line = index
	l.word = 0

	words := strings.FieldsFunc(line, isSeparator)
	if len(words) > 0 && words[0] == "//" {
		// Comment lines collapse into a single token
		l.emit(strings.TrimSpace(line))
		l.tokens[len(l.tokens)-1].Symbol = Comment
	} else {
		for _, word := range words {
			l.lexWord(word)
		}
	}

	if withNewline {
		l.emit("\n")
	}
}

// lexWord handles the parenthesis exception to the split-on-space rule. Parentheses are only
// expected at the start or the end of a word.
func (l *Lexer) lexWord(word string) {
	if !strings.HasPrefix(word, "(") && !strings.HasSuffix(word, ")") {
		l.emit(word)
		return
	}

	core := strings.TrimLeft(word, "(")
	opening := len(word) - len(core)
	trimmed := strings.TrimRight(core, ")")
	closing := len(core) - len(trimmed)

	for i := 0; i < opening; i++ {
		l.emit("(")
	}
	if trimmed != "" {
		l.emit(trimmed)
	}
	for i := 0; i < closing; i++ {
		l.emit(")")
	}
}

func (l *Lexer) emit(text string) {
	l.tokens = append(l.tokens, Token{
		Text:   text,
		Symbol: Identify(text),
		Line:   l.line,
		Word:   l.word,
	})
	l.word++
}

// isSeparator returns true for the word separators: space, tab and carriage return
func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
