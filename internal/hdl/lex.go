// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"unicode"
	"unicode/utf8"
)

// Type is the type of a lexer token.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	Dot
	Comma
	Equal
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Dot:
		return "'.'"
	case Comma:
		return "','"
	case Equal:
		return "'='"
	}
	return "invalid character"
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value string
}

// A stateFn lexes one token and returns the next state. A nil return value
// means "back to lexInit".
//
type stateFn func(l *lexer) stateFn

type lexer struct {
	input string
	start int // start of current token
	pos   int // current position
	width int // width of last rune read
	state stateFn
	items []Item
}

// newLexer returns a new lexer for component references and connection lists.
//
func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return -1
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *lexer) backup() { l.pos -= l.width }

func (l *lexer) emit(t Type) {
	l.items = append(l.items, Item{t, l.start, l.input[l.start:l.pos]})
	l.start = l.pos
}

// Lex returns the next token.
//
func (l *lexer) Lex() Item {
	for len(l.items) == 0 {
		st := l.state
		if st == nil {
			st = lexInit
		}
		l.state = st(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

func lexInit(l *lexer) stateFn {
	r := l.next()
	switch {
	case r < 0:
		return lexEOF
	case unicode.IsSpace(r):
		for r = l.next(); r >= 0 && unicode.IsSpace(r); r = l.next() {
		}
		if r >= 0 {
			l.backup()
		}
		l.start = l.pos
	case isIdentRune(r):
		return lexIdent
	case r == '.':
		l.emit(Dot)
	case r == ',':
		l.emit(Comma)
	case r == '=':
		l.emit(Equal)
	default:
		l.emit(Raw)
		return lexEOF
	}
	return nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func lexIdent(l *lexer) stateFn {
	r := l.next()
	for r >= 0 && isIdentRune(r) {
		r = l.next()
	}
	if r >= 0 {
		l.backup()
	}
	l.emit(Ident)
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lexer) stateFn {
	l.start = l.pos
	l.emit(EOF)
	return lexEOF
}
