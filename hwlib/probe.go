// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/syncsim"
)

// Assertion checks its input against an expected value for each cycle.
//
type Assertion struct {
	Base
	In     syncsim.Input    `json:"in"`
	Values []syncsim.Signal `json:"values"`
}

// Assert returns an assertion probe.
//
//	Inputs: in
//	Function: if in != values[cycle] { raise Assert }
//
// Unknown expected values and cycles past the end of values are not checked.
//
func Assert(id, w string, values ...syncsim.Signal) *Assertion {
	a := &Assertion{Base: Base{ID: id}, Values: values}
	connect(a, w)
	return a
}

// Describe implements syncsim.Component.
//
func (a *Assertion) Describe() (string, syncsim.Ports) {
	return a.ID, syncsim.Ports{Inputs: in(pIn, a.In), Kind: syncsim.Combinatorial}
}

// Rewire implements syncsim.Component.
//
func (a *Assertion) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		a.In = i
	}
}

// Evaluate implements syncsim.Component.
//
func (a *Assertion) Evaluate(s *syncsim.State) error {
	c := s.Cycle()
	if c >= uint64(len(a.Values)) || !a.Values[c].Known() {
		return nil
	}
	if v := s.In(iIn); v != a.Values[c] {
		return syncsim.NewCondition(a.ID, syncsim.Assert, "cycle %d: expected %s, got %s", c, a.Values[c], v)
	}
	return nil
}

// Halter requests the simulation to stop.
//
type Halter struct {
	Base
	In syncsim.Input `json:"in"`
}

// Halt returns a halt probe.
//
//	Inputs: in
//	Function: if in != 0 { raise Halt }
//
// An Unknown input does not halt.
//
func Halt(id, w string) *Halter {
	h := &Halter{Base: Base{ID: id}}
	connect(h, w)
	return h
}

// Describe implements syncsim.Component.
//
func (h *Halter) Describe() (string, syncsim.Ports) {
	return h.ID, syncsim.Ports{Inputs: in(pIn, h.In), Kind: syncsim.Combinatorial}
}

// Rewire implements syncsim.Component.
//
func (h *Halter) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		h.In = i
	}
}

// Evaluate implements syncsim.Component.
//
func (h *Halter) Evaluate(s *syncsim.State) error {
	v, err := s.In(iIn).Uint32()
	if err == nil && v != 0 {
		return syncsim.NewCondition(h.ID, syncsim.Halt, "halt requested (%d)", v)
	}
	return nil
}
