// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable components for syncsim.
//
// Components are created with a connection string binding their input ports
// to the outputs of other components, and are registered for persistence:
//
//	hwlib.Add("pc_inc", "a=pc.out, b=c4.out")
//
// Every component type in this package exposes a single output named "out",
// except probes which have no outputs.
//
package hwlib

import (
	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
)

// common port names
const (
	pA    = "a"
	pB    = "b"
	pIn   = "in"
	pSel  = "sel"
	pOut  = "out"
	pAddr = "addr"
	pData = "data"
	pWE   = "we"
	pSub  = "sub"
)

// Base holds the id and editor position shared by all components of this
// package.
//
type Base struct {
	ID  string      `json:"id"`
	Pos syncsim.Pos `json:"pos"`
}

// Position implements syncsim.Positioner.
//
func (b *Base) Position() syncsim.Pos { return b.Pos }

// SetPosition implements syncsim.Positioner.
//
func (b *Base) SetPosition(p syncsim.Pos) { b.Pos = p }

// connect binds the inputs of c according to the connection string w. It
// panics if w is malformed or names a port that c does not have.
//
func connect(c syncsim.Component, w string) {
	m, err := syncsim.ParseConnections(w)
	if err != nil {
		panic(err)
	}
	id, ports := c.Describe()
	for k, in := range m {
		if _, ok := ports.Input(k); !ok {
			panic(errors.New("invalid pin name " + k + " for part " + id))
		}
		c.Rewire(k, in)
	}
}

// in returns a one input port list.
//
func in(id string, i syncsim.Input) []syncsim.InputPort {
	return []syncsim.InputPort{{ID: id, Input: i}}
}

func out() []string { return []string{pOut} }

// port positions in Ports.Inputs, as read with State.In.
const (
	iIn  = 0
	iA   = 0
	iB   = 1
	iSel = 0
	iSub = 2

	iAddr = 0
	iData = 1
	iWE   = 2
)

// oOut is the position of the "out" port.
const oOut = 0

func init() {
	for _, c := range []syncsim.Component{
		(*Gate)(nil),
		(*FullAdder)(nil),
		(*NotGate)(nil),
		(*SignExt)(nil),
		(*Multiplexer)(nil),
		(*Register)(nil),
		(*Memory)(nil),
		(*Const)(nil),
		(*Stimulus)(nil),
		(*Probe)(nil),
		(*Assertion)(nil),
		(*Halter)(nil),
	} {
		syncsim.RegisterType(c)
	}
}
