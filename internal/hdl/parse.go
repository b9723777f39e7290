// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the textual wiring notation used to connect components:
// output references like "alu.out" and connection lists like
// "a=c1.out, b=c2.out".
//
package hdl

import (
	"github.com/pkg/errors"
)

// Ref is a reference to a component output: Component.Port.
//
type Ref struct {
	Component string
	Port      string
	Pos       int
}

// Conn connects the input port Port of a component to the output Ref.
//
type Conn struct {
	Port string
	Ref  Ref
}

// ParseRef parses a single "component.port" reference.
//
func ParseRef(input string) (Ref, error) {
	p := parser{l: newLexer(input), input: input}
	p.advance()
	r, err := p.ref()
	if err != nil {
		return Ref{}, err
	}
	if p.i.Type != EOF {
		return Ref{}, p.errorf("unexpected %s", p.i.Type)
	}
	return r, nil
}

// ParseConns parses a comma separated list of port=component.port
// assignments. An empty input yields an empty list.
//
func ParseConns(input string) ([]Conn, error) {
	var conns []Conn
	p := parser{l: newLexer(input), input: input}
	p.advance()
	if p.i.Type == EOF {
		return nil, nil
	}
	for {
		if p.i.Type != Ident {
			return nil, p.errorf("expected port name")
		}
		port := p.i.Value
		p.advance()
		if p.i.Type != Equal {
			return nil, p.errorf("expected '=' after port name")
		}
		p.advance()
		r, err := p.ref()
		if err != nil {
			return nil, err
		}
		conns = append(conns, Conn{port, r})
		switch p.i.Type {
		case EOF:
			return conns, nil
		case Comma:
			p.advance()
		default:
			return nil, p.errorf("unexpected %s", p.i.Type)
		}
	}
}

type parser struct {
	input string
	l     *lexer
	i     Item
}

func (p *parser) advance() { p.i = p.l.Lex() }

func (p *parser) ref() (Ref, error) {
	if p.i.Type != Ident {
		return Ref{}, p.errorf("expected component name")
	}
	r := Ref{Component: p.i.Value, Pos: p.i.Pos}
	p.advance()
	if p.i.Type != Dot {
		return Ref{}, p.errorf("expected '.' after component name")
	}
	p.advance()
	if p.i.Type != Ident {
		return Ref{}, p.errorf("expected output port name")
	}
	r.Port = p.i.Value
	p.advance()
	return r, nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("in %q at pos %d: "+format, append([]interface{}{p.input, p.i.Pos + 1}, args...)...)
}
