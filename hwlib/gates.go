// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
)

// binary operators usable in a Gate.
var ops = map[string]func(a, b uint32) uint32{
	"AND":  func(a, b uint32) uint32 { return a & b },
	"OR":   func(a, b uint32) uint32 { return a | b },
	"XOR":  func(a, b uint32) uint32 { return a ^ b },
	"NAND": func(a, b uint32) uint32 { return ^(a & b) },
	"NOR":  func(a, b uint32) uint32 { return ^(a | b) },
	"ADD":  func(a, b uint32) uint32 { return a + b },
	"SUB":  func(a, b uint32) uint32 { return a - b },
}

// Gate is a two inputs combinatorial unit applying a bitwise or arithmetic
// operator to its inputs. If either input is Unknown, so is the output.
//
type Gate struct {
	Base
	Op string        `json:"op"`
	A  syncsim.Input `json:"a"`
	B  syncsim.Input `json:"b"`
}

func newGate(op, id, w string) *Gate {
	g := &Gate{Base: Base{ID: id}, Op: op}
	connect(g, w)
	return g
}

// Describe implements syncsim.Component.
//
func (g *Gate) Describe() (string, syncsim.Ports) {
	return g.ID, syncsim.Ports{
		Inputs:  []syncsim.InputPort{{ID: pA, Input: g.A}, {ID: pB, Input: g.B}},
		Kind:    syncsim.Combinatorial,
		Outputs: out(),
	}
}

// Rewire implements syncsim.Component.
//
func (g *Gate) Rewire(port string, in syncsim.Input) {
	switch port {
	case pA:
		g.A = in
	case pB:
		g.B = in
	}
}

// Evaluate implements syncsim.Component.
//
func (g *Gate) Evaluate(s *syncsim.State) error {
	fn := ops[g.Op]
	if fn == nil {
		return errors.Errorf("unsupported operator %q", g.Op)
	}
	a, errA := s.In(iA).Uint32()
	b, errB := s.In(iB).Uint32()
	if errA != nil || errB != nil {
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	s.Out(oOut, syncsim.Data(fn(a, b)))
	return nil
}

// And returns a bitwise AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a & b
//
func And(id, w string) *Gate { return newGate("AND", id, w) }

// Or returns a bitwise OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a | b
//
func Or(id, w string) *Gate { return newGate("OR", id, w) }

// Xor returns a bitwise XOR gate.
//
func Xor(id, w string) *Gate { return newGate("XOR", id, w) }

// Nand returns a bitwise NAND gate.
//
func Nand(id, w string) *Gate { return newGate("NAND", id, w) }

// Nor returns a bitwise NOR gate.
//
func Nor(id, w string) *Gate { return newGate("NOR", id, w) }

// NotGate is a bitwise NOT.
//
type NotGate struct {
	Base
	In syncsim.Input `json:"in"`
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = ^in
//
func Not(id, w string) *NotGate {
	n := &NotGate{Base: Base{ID: id}}
	connect(n, w)
	return n
}

// Describe implements syncsim.Component.
//
func (n *NotGate) Describe() (string, syncsim.Ports) {
	return n.ID, syncsim.Ports{Inputs: in(pIn, n.In), Kind: syncsim.Combinatorial, Outputs: out()}
}

// Rewire implements syncsim.Component.
//
func (n *NotGate) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		n.In = i
	}
}

// Evaluate implements syncsim.Component.
//
func (n *NotGate) Evaluate(s *syncsim.State) error {
	v, err := s.In(iIn).Uint32()
	if err != nil {
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	s.Out(oOut, syncsim.Data(^v))
	return nil
}
