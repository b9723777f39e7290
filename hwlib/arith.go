// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
)

// Add returns a 32 bits adder. Overflow wraps around.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a + b
//
func Add(id, w string) *Gate { return newGate("ADD", id, w) }

// Sub returns a 32 bits subtractor. Overflow wraps around.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a - b
//
func Sub(id, w string) *Gate { return newGate("SUB", id, w) }

// FullAdder adds or subtracts its inputs depending on a control input.
//
type FullAdder struct {
	Base
	A   syncsim.Input `json:"a"`
	B   syncsim.Input `json:"b"`
	Sub syncsim.Input `json:"sub"`
}

// FullAdd returns a 32 bits adder/subtractor. Overflow wraps around.
//
//	Inputs: a, b, sub
//	Outputs: out
//	Function: out = sub != 0 ? a - b : a + b
//
// If any input is Unknown, so is the output.
//
func FullAdd(id, w string) *FullAdder {
	f := &FullAdder{Base: Base{ID: id}}
	connect(f, w)
	return f
}

// Describe implements syncsim.Component.
//
func (f *FullAdder) Describe() (string, syncsim.Ports) {
	return f.ID, syncsim.Ports{
		Inputs: []syncsim.InputPort{
			{ID: pA, Input: f.A},
			{ID: pB, Input: f.B},
			{ID: pSub, Input: f.Sub},
		},
		Kind:    syncsim.Combinatorial,
		Outputs: out(),
	}
}

// Rewire implements syncsim.Component.
//
func (f *FullAdder) Rewire(port string, in syncsim.Input) {
	switch port {
	case pA:
		f.A = in
	case pB:
		f.B = in
	case pSub:
		f.Sub = in
	}
}

// Evaluate implements syncsim.Component.
//
func (f *FullAdder) Evaluate(s *syncsim.State) error {
	a, errA := s.In(iA).Uint32()
	b, errB := s.In(iB).Uint32()
	sub, errS := s.In(iSub).Uint32()
	if errA != nil || errB != nil || errS != nil {
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	if sub != 0 {
		b = -b
	}
	s.Out(oOut, syncsim.Data(a+b))
	return nil
}

// SignExt sign-extends the Bits least significant bits of its input to 32 bits.
//
type SignExt struct {
	Base
	In   syncsim.Input `json:"in"`
	Bits uint          `json:"bits"`
}

// Sext returns a sign extender for a bits wide input.
//
//	Inputs: in
//	Outputs: out
//	Function: out = int32(in << (32-bits)) >> (32-bits)
//
func Sext(id string, bits uint, w string) *SignExt {
	x := &SignExt{Base: Base{ID: id}, Bits: bits}
	connect(x, w)
	return x
}

// Describe implements syncsim.Component.
//
func (x *SignExt) Describe() (string, syncsim.Ports) {
	return x.ID, syncsim.Ports{Inputs: in(pIn, x.In), Kind: syncsim.Combinatorial, Outputs: out()}
}

// Rewire implements syncsim.Component.
//
func (x *SignExt) Rewire(port string, i syncsim.Input) {
	if port == pIn {
		x.In = i
	}
}

// Evaluate implements syncsim.Component.
//
func (x *SignExt) Evaluate(s *syncsim.State) error {
	if x.Bits == 0 || x.Bits > 32 {
		return errors.Errorf("invalid input width %d", x.Bits)
	}
	v, err := s.In(iIn).Uint32()
	if err != nil {
		s.Out(oOut, syncsim.Unknown)
		return nil
	}
	sh := 32 - x.Bits
	s.Out(oOut, syncsim.Int(int32(v<<sh)>>sh))
	return nil
}
