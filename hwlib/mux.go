// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"
	"strings"

	"github.com/db47h/syncsim"
)

// Multiplexer forwards the input selected by sel to its output.
//
type Multiplexer struct {
	Base
	Sel syncsim.Input   `json:"sel"`
	Ins []syncsim.Input `json:"ins"`
}

// Mux returns an n inputs multiplexer.
//
//	Inputs: sel, in0 .. in<n-1>
//	Outputs: out
//	Function: out = in<sel>
//
// An Unknown sel yields an Unknown output. A sel value out of range raises an
// Illegal condition.
//
func Mux(id string, n int, w string) *Multiplexer {
	m := &Multiplexer{Base: Base{ID: id}, Ins: make([]syncsim.Input, n)}
	connect(m, w)
	return m
}

func muxIn(i int) string { return pIn + strconv.Itoa(i) }

// Describe implements syncsim.Component.
//
func (m *Multiplexer) Describe() (string, syncsim.Ports) {
	ins := make([]syncsim.InputPort, 0, len(m.Ins)+1)
	ins = append(ins, syncsim.InputPort{ID: pSel, Input: m.Sel})
	for i, in := range m.Ins {
		ins = append(ins, syncsim.InputPort{ID: muxIn(i), Input: in})
	}
	return m.ID, syncsim.Ports{Inputs: ins, Kind: syncsim.Combinatorial, Outputs: out()}
}

// Rewire implements syncsim.Component.
//
func (m *Multiplexer) Rewire(port string, in syncsim.Input) {
	if port == pSel {
		m.Sel = in
		return
	}
	if !strings.HasPrefix(port, pIn) {
		return
	}
	i, err := strconv.Atoi(port[len(pIn):])
	if err != nil || i < 0 || i >= len(m.Ins) || muxIn(i) != port {
		return
	}
	m.Ins[i] = in
}

// Evaluate implements syncsim.Component.
//
func (m *Multiplexer) Evaluate(s *syncsim.State) error {
	sel, err := s.In(iSel).Uint32()
	if err != nil {
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	if sel >= uint32(len(m.Ins)) {
		return syncsim.NewCondition(m.ID, syncsim.Illegal, "select %d out of range [0, %d)", sel, len(m.Ins))
	}
	s.Out(oOut, s.In(iSel+1+int(sel)))
	return nil
}
