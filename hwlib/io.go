// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/syncsim"
)

// Const is a constant source.
//
type Const struct {
	Base
	Value syncsim.Signal `json:"value"`
}

// Constant returns a constant source.
//
//	Outputs: out
//	Function: out = v
//
func Constant(id string, v syncsim.Signal) *Const {
	return &Const{Base: Base{ID: id}, Value: v}
}

// Describe implements syncsim.Component.
//
func (c *Const) Describe() (string, syncsim.Ports) {
	return c.ID, syncsim.Ports{Kind: syncsim.Combinatorial, Outputs: out()}
}

// Rewire implements syncsim.Component. A constant has no inputs.
//
func (c *Const) Rewire(string, syncsim.Input) {}

// Evaluate implements syncsim.Component.
//
func (c *Const) Evaluate(s *syncsim.State) error {
	s.Out(oOut, c.Value)
	return nil
}

// Stimulus outputs a predefined value per clock cycle.
//
type Stimulus struct {
	Base
	Values []syncsim.Signal `json:"values"`
}

// Stim returns a stimulus source.
//
//	Outputs: out
//	Function: out = values[cycle], or Unknown once the values are exhausted.
//
func Stim(id string, values ...syncsim.Signal) *Stimulus {
	return &Stimulus{Base: Base{ID: id}, Values: values}
}

// Describe implements syncsim.Component.
//
func (st *Stimulus) Describe() (string, syncsim.Ports) {
	return st.ID, syncsim.Ports{Kind: syncsim.Combinatorial, Outputs: out()}
}

// Rewire implements syncsim.Component. A stimulus has no inputs.
//
func (st *Stimulus) Rewire(string, syncsim.Input) {}

// Evaluate implements syncsim.Component.
//
func (st *Stimulus) Evaluate(s *syncsim.State) error {
	v := syncsim.Unknown
	if c := s.Cycle(); c < uint64(len(st.Values)) {
		v = st.Values[c]
	}
	s.Out(oOut, v)
	return nil
}

// Probe is an observation point. It has no outputs. If Fn is not nil, it is
// called with the cycle number and the input value every time the probe is
// evaluated.
//
type Probe struct {
	Base
	In syncsim.Input                        `json:"in"`
	Fn func(cycle uint64, v syncsim.Signal) `json:"-"`
}

// NewProbe returns a probe calling fn with the input value on every
// evaluation. fn may be nil.
//
//	Inputs: in
//	Function: fn(cycle, in)
//
func NewProbe(id, w string, fn func(cycle uint64, v syncsim.Signal)) *Probe {
	p := &Probe{Base: Base{ID: id}, Fn: fn}
	connect(p, w)
	return p
}

// Describe implements syncsim.Component.
//
func (p *Probe) Describe() (string, syncsim.Ports) {
	return p.ID, syncsim.Ports{Inputs: in(pIn, p.In), Kind: syncsim.Combinatorial}
}

// Rewire implements syncsim.Component.
//
func (p *Probe) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		p.In = i
	}
}

// Evaluate implements syncsim.Component.
//
func (p *Probe) Evaluate(s *syncsim.State) error {
	v := s.In(iIn)
	if p.Fn != nil {
		p.Fn(s.Cycle(), v)
	}
	return nil
}
