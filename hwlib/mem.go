// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/syncsim"
)

// words is the contents of a Memory, indexed by word address. Missing words
// read as zero.
//
type words map[uint32]uint32

func (w words) Clone() syncsim.Local {
	c := make(words, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}

// Memory is a word addressed memory with a registered read port and a
// write port. Addresses are byte addresses and must be 4 bytes aligned.
//
// Reads return the contents before any write done in the same cycle. Writes
// become visible at the end of the cycle.
//
type Memory struct {
	Base
	Addr  syncsim.Input `json:"addr"`
	Data  syncsim.Input `json:"data"`
	WE    syncsim.Input `json:"we"`
	Words uint32        `json:"words"`
	Init  []uint32      `json:"init,omitempty"`
}

// Mem returns a memory of the given size in words, whose first words are
// initialized with init.
//
//	Inputs: addr, data, we
//	Outputs: out
//	Function: out(t) = mem[addr(t-1)]
//	          if we(t-1) != 0 { mem[addr(t-1)] = data(t-1) }
//
func Mem(id string, size uint32, init []uint32, w string) *Memory {
	m := &Memory{Base: Base{ID: id}, Words: size, Init: init}
	connect(m, w)
	return m
}

// Describe implements syncsim.Component.
//
func (m *Memory) Describe() (string, syncsim.Ports) {
	return m.ID, syncsim.Ports{
		Inputs: []syncsim.InputPort{
			{ID: pAddr, Input: m.Addr},
			{ID: pData, Input: m.Data},
			{ID: pWE, Input: m.WE},
		},
		Kind:    syncsim.Sequential,
		Outputs: out(),
	}
}

// Rewire implements syncsim.Component.
//
func (m *Memory) Rewire(port string, in syncsim.Input) {
	switch port {
	case pAddr:
		m.Addr = in
	case pData:
		m.Data = in
	case pWE:
		m.WE = in
	}
}

// Reset implements syncsim.Resetter.
//
func (m *Memory) Reset(s *syncsim.State) {
	w := make(words, len(m.Init))
	for i, v := range m.Init {
		if uint32(i) < m.Words {
			w[uint32(i)] = v
		}
	}
	s.SetLocal(w)
	s.Out(oOut, syncsim.Unknown)
}

// Evaluate implements syncsim.Component.
//
func (m *Memory) Evaluate(s *syncsim.State) error {
	we, err := s.In(iWE).Uint32()
	if err != nil {
		return syncsim.NewCondition(m.ID, syncsim.Illegal, "write enable is unknown")
	}
	addr, err := s.In(iAddr).Uint32()
	if err != nil {
		if we != 0 {
			return syncsim.NewCondition(m.ID, syncsim.Illegal, "write to unknown address")
		}
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	if addr&3 != 0 {
		return syncsim.NewCondition(m.ID, syncsim.Illegal, "unaligned address %#x", addr)
	}
	if addr/4 >= m.Words {
		return syncsim.NewCondition(m.ID, syncsim.Illegal, "address %#x out of range", addr)
	}
	cur, _ := s.Local().(words)
	if we != 0 {
		data, err := s.In(iData).Uint32()
		if err != nil {
			return syncsim.NewCondition(m.ID, syncsim.Illegal, "write of unknown data at %#x", addr)
		}
		next := cur.Clone().(words)
		next[addr/4] = data
		s.SetLocal(next)
	}
	s.Out(oOut, syncsim.Data(cur[addr/4]))
	return nil
}

// Peek returns the committed word at byte address addr in memory m. ok is
// false if s holds no contents for m or the address is out of range.
//
func Peek(s *syncsim.State, m *Memory, addr uint32) (v uint32, ok bool) {
	w, ok := s.LocalOf(m.ID).(words)
	if !ok || addr&3 != 0 || addr/4 >= m.Words {
		return 0, false
	}
	return w[addr/4], true
}
