// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/syncsim"

// Register is a clocked 32 bits register.
//
type Register struct {
	Base
	In   syncsim.Input  `json:"in"`
	Init syncsim.Signal `json:"init"`
}

// Reg returns a register with the initial value init.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//	          out(0) = init
//
func Reg(id string, init syncsim.Signal, w string) *Register {
	r := &Register{Base: Base{ID: id}, Init: init}
	connect(r, w)
	return r
}

// Describe implements syncsim.Component.
//
func (r *Register) Describe() (string, syncsim.Ports) {
	return r.ID, syncsim.Ports{Inputs: in(pIn, r.In), Kind: syncsim.Sequential, Outputs: out()}
}

// Rewire implements syncsim.Component.
//
func (r *Register) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		r.In = i
	}
}

// Reset implements syncsim.Resetter.
//
func (r *Register) Reset(s *syncsim.State) {
	s.Out(oOut, r.Init)
}

// Evaluate implements syncsim.Component.
//
func (r *Register) Evaluate(s *syncsim.State) error {
	s.Out(oOut, s.In(iIn))
	return nil
}
