// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"github.com/db47h/syncsim/internal/hdl"
	"github.com/pkg/errors"
)

// An Input is a reference to the output Port of the component ID.
//
type Input struct {
	ID   string `json:"id"`
	Port string `json:"port"`
}

// NewInput returns an Input referencing the output port of component id.
//
func NewInput(id, port string) Input { return Input{ID: id, Port: port} }

// ParseInput parses an input reference of the form "component.port".
//
func ParseInput(s string) (Input, error) {
	r, err := hdl.ParseRef(s)
	if err != nil {
		return Input{}, err
	}
	return Input{r.Component, r.Port}, nil
}

// MustParseInput is like ParseInput but panics on error.
//
func MustParseInput(s string) Input {
	in, err := ParseInput(s)
	if err != nil {
		panic(err)
	}
	return in
}

func (in Input) String() string { return in.ID + "." + in.Port }

// ParseConnections parses a connection list like "a=c1.out, b=c2.out" and
// returns the inputs keyed by input port name. A port may only be connected
// once.
//
func ParseConnections(s string) (map[string]Input, error) {
	conns, err := hdl.ParseConns(s)
	if err != nil {
		return nil, err
	}
	m := make(map[string]Input, len(conns))
	for _, c := range conns {
		if _, ok := m[c.Port]; ok {
			return nil, errors.Errorf("in %q: input %s connected more than once", s, c.Port)
		}
		m[c.Port] = Input{c.Ref.Component, c.Ref.Port}
	}
	return m, nil
}

// OutputKind tells the scheduler how a component's outputs relate to its
// inputs.
//
type OutputKind int

const (
	// Combinatorial outputs are a pure function of the inputs in the current
	// cycle.
	Combinatorial OutputKind = iota
	// Sequential outputs are stored state, updated at commit time from inputs
	// sampled during the cycle.
	Sequential
)

func (k OutputKind) String() string {
	switch k {
	case Combinatorial:
		return "combinatorial"
	case Sequential:
		return "sequential"
	}
	return "unknown"
}

// InputPort binds the input port ID to an Input.
//
type InputPort struct {
	ID    string
	Input Input
}

// Ports describes the full port surface of a component.
//
type Ports struct {
	Inputs  []InputPort
	Kind    OutputKind
	Outputs []string
}

// HasOutput returns true if name is one of the declared outputs.
//
func (p *Ports) HasOutput(name string) bool {
	for _, o := range p.Outputs {
		if o == name {
			return true
		}
	}
	return false
}

// Input returns the Input bound to the input port name.
//
func (p *Ports) Input(name string) (Input, bool) {
	for i := range p.Inputs {
		if p.Inputs[i].ID == name {
			return p.Inputs[i].Input, true
		}
	}
	return Input{}, false
}

// check verifies that input and output port names are unique.
//
func (p *Ports) check(id string) error {
	seen := make(map[string]bool, len(p.Inputs))
	for _, i := range p.Inputs {
		if seen[i.ID] {
			return &PortError{ID: id, Port: i.ID, Msg: "duplicate input port"}
		}
		seen[i.ID] = true
	}
	seen = make(map[string]bool, len(p.Outputs))
	for _, o := range p.Outputs {
		if seen[o] {
			return &PortError{ID: id, Port: o, Msg: "duplicate output port"}
		}
		seen[o] = true
	}
	return nil
}
