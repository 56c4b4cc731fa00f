// Package cmpro reads and writes the legacy clrmamepro paren-block text
// format.
package cmpro

import (
	"bufio"
	"io"
	"strings"
)

// tokenKind tags a lexer token.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokOpen
	tokClose
	tokWord
)

// token is one lexical unit: a parenthesis or a (possibly quoted) word.
type token struct {
	kind tokenKind
	text string
}

// lexer splits clrmamepro text into parens and words. Quoted strings
// may contain spaces and parens; a backslash escapes the next rune.
type lexer struct {
	r *bufio.Reader
}

func newLexer(input io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(input)}
}

// next returns the next token, or a tokEOF token at end of input.
func (l *lexer) next() token {
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return token{kind: tokEOF}
		}
		switch {
		case c == '(':
			return token{kind: tokOpen, text: "("}
		case c == ')':
			return token{kind: tokClose, text: ")"}
		case c == '"':
			return token{kind: tokWord, text: l.quoted()}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		default:
			return token{kind: tokWord, text: l.word(c)}
		}
	}
}

func (l *lexer) quoted() string {
	var b strings.Builder
	for {
		c, _, err := l.r.ReadRune()
		if err != nil || c == '"' {
			return b.String()
		}
		if c == '\\' {
			if esc, _, err := l.r.ReadRune(); err == nil {
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(c)
	}
}

func (l *lexer) word(first rune) string {
	var b strings.Builder
	b.WriteRune(first)
	for {
		c, _, err := l.r.ReadRune()
		if err != nil {
			return b.String()
		}
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			return b.String()
		}
		if c == '(' || c == ')' {
			_ = l.r.UnreadRune()
			return b.String()
		}
		b.WriteRune(c)
	}
}
