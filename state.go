// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"reflect"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
)

// Local is component-local persistent state (a memory's contents, for
// instance) held in the State so that it can be snapshotted. Once handed to
// State.SetLocal, a Local must not be mutated: components modify a Clone and
// set it back.
//
type Local interface {
	Clone() Local
}

type phase int

const (
	phaseIdle phase = iota
	phaseReset
	phasePropagate
	phaseSample
)

// binding holds the slot handles of one component, resolved at build time.
// ins follows the order of Ports.Inputs and outs the order of Ports.Outputs.
//
type binding struct {
	id   string
	idx  int // position in the store
	ins  []int
	outs []int
	seq  bool
	src  []Input // for error messages
}

// layout maps every declared output to a slot number and every component to
// its bindings. It is computed once per build and shared by all states of a
// simulator. The maps are only used by observers.
//
type layout struct {
	slots map[Input]int
	ids   map[string]int
	seq   []bool // slot is an output of a sequential component
	nodes []binding
}

// State holds the current value of every output in a circuit, together with
// component-local state and the cycle counter.
//
// Components access their own ports through In and Out, by position in the
// Ports returned by Describe. During a clock cycle, writes to the outputs or
// local state of sequential components are staged: they become visible only
// when the cycle commits.
//
type State struct {
	l      *layout
	values []Signal
	cycle  uint64
	locals []Local // by component

	phase        phase
	cur          *binding // component being evaluated
	staged       []Signal
	pending      *bitset.BitSet // slots with a staged value
	driven       *bitset.BitSet // slots written during the current pass
	stagedLocals []Local
	localPending *bitset.BitSet
}

func newState(l *layout) *State {
	n := uint(len(l.seq))
	return &State{
		l:            l,
		values:       make([]Signal, n),
		locals:       make([]Local, len(l.nodes)),
		staged:       make([]Signal, n),
		pending:      bitset.New(n),
		driven:       bitset.New(n),
		stagedLocals: make([]Local, len(l.nodes)),
		localPending: bitset.New(uint(len(l.nodes))),
	}
}

func (s *State) node() *binding {
	if s.cur == nil {
		panic(errors.New("port access outside of Evaluate or Reset"))
	}
	return s.cur
}

// In returns the value connected to the i-th input port of the component
// being evaluated.
//
// In panics if i is out of range, or if, during the propagate phase, the
// input is a combinatorial output that has not been driven yet. Both indicate
// a broken evaluation plan.
//
func (s *State) In(i int) Signal {
	b := s.node()
	n := b.ins[i]
	if s.phase == phasePropagate && !s.l.seq[n] && !s.driven.Test(uint(n)) {
		panic(errors.Errorf("%s: input %s read before being driven", b.id, b.src[i]))
	}
	return s.values[n]
}

// Out sets the value of the i-th output port of the component being
// evaluated.
//
func (s *State) Out(i int, v Signal) {
	b := s.node()
	n := b.outs[i]
	if b.seq && s.staging() {
		s.staged[n] = v
		s.pending.Set(uint(n))
		return
	}
	s.values[n] = v
	s.driven.Set(uint(n))
}

// Local returns the committed local state of the component being evaluated,
// or nil.
//
func (s *State) Local() Local {
	return s.locals[s.node().idx]
}

// SetLocal replaces the local state of the component being evaluated. For
// sequential components the new value is staged until the end of the cycle.
//
func (s *State) SetLocal(l Local) {
	i := s.node().idx
	if s.cur.seq && s.staging() {
		s.stagedLocals[i] = l
		s.localPending.Set(uint(i))
		return
	}
	s.locals[i] = l
}

// Cycle returns the number of committed clock cycles since the last reset.
//
func (s *State) Cycle() uint64 { return s.cycle }

// Value returns the value of an output. ok is false if the output does not
// exist. Value is meant for observers.
//
func (s *State) Value(in Input) (v Signal, ok bool) {
	n, ok := s.l.slots[in]
	if !ok {
		return Unknown, false
	}
	return s.values[n], true
}

// LocalOf returns the committed local state of component id, or nil. It is
// meant for observers.
//
func (s *State) LocalOf(id string) Local {
	i, ok := s.l.ids[id]
	if !ok {
		return nil
	}
	return s.locals[i]
}

// Len returns the number of output slots.
//
func (s *State) Len() int { return len(s.values) }

// Clone returns a deep copy of s. The copy shares nothing mutable with s.
//
func (s *State) Clone() *State {
	c := newState(s.l)
	copy(c.values, s.values)
	c.cycle = s.cycle
	for i, l := range s.locals {
		if l != nil {
			c.locals[i] = l.Clone()
		}
	}
	return c
}

// Equal returns true if s and o hold the same values, local state and cycle
// count.
//
func (s *State) Equal(o *State) bool {
	if s.cycle != o.cycle || len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i] != o.values[i] {
			return false
		}
	}
	return reflect.DeepEqual(s.locals, o.locals)
}

func (s *State) staging() bool {
	return s.phase == phasePropagate || s.phase == phaseSample
}

// bind selects the component whose ports In and Out refer to.
//
func (s *State) bind(i int) { s.cur = &s.l.nodes[i] }

// restore replaces the contents of s with the contents of o.
//
func (s *State) restore(o *State) {
	s.values, s.locals, s.cycle = o.values, o.locals, o.cycle
	s.discard()
	s.end()
}

// clear sets every output to Unknown and drops local state.
//
func (s *State) clear() {
	for i := range s.values {
		s.values[i] = Unknown
	}
	for i := range s.locals {
		s.locals[i] = nil
	}
	s.cycle = 0
	s.discard()
}

func (s *State) beginPass() {
	s.driven.ClearAll()
	s.phase = phasePropagate
}

// end returns to the idle phase.
//
func (s *State) end() {
	s.phase = phaseIdle
	s.cur = nil
}

// commit makes staged values visible.
//
func (s *State) commit() {
	for i, ok := s.pending.NextSet(0); ok; i, ok = s.pending.NextSet(i + 1) {
		s.values[i] = s.staged[i]
		s.staged[i] = Unknown
	}
	s.pending.ClearAll()
	for i, ok := s.localPending.NextSet(0); ok; i, ok = s.localPending.NextSet(i + 1) {
		s.locals[i] = s.stagedLocals[i]
		s.stagedLocals[i] = nil
	}
	s.localPending.ClearAll()
}

// discard drops staged values.
//
func (s *State) discard() {
	for i, ok := s.pending.NextSet(0); ok; i, ok = s.pending.NextSet(i + 1) {
		s.staged[i] = Unknown
	}
	s.pending.ClearAll()
	for i, ok := s.localPending.NextSet(0); ok; i, ok = s.localPending.NextSet(i + 1) {
		s.stagedLocals[i] = nil
	}
	s.localPending.ClearAll()
}
