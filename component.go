// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

// A Component is a functional unit in a circuit.
//
// Describe returns the component id and its port surface. It must be pure:
// the simulator calls it once per build.
//
// Rewire binds the input port named port to in. Unknown port names must be
// silently ignored.
//
// Evaluate reads the component's inputs from s and writes its outputs to s.
// Ports are addressed by their position in the Ports returned by Describe:
// s.In(0) reads the first input port and s.Out(0, v) sets the first output.
// Evaluate must be a deterministic function of the inputs and of the
// component's local state held in s. It returns a *Condition for expected runtime events
// (assertion failures, halt requests, illegal accesses), in which case it
// must not have written any output. Any other error is treated as fatal by
// the simulator.
//
// For example, a component negating its input could be written as:
//
//	type Neg struct {
//		ID string
//		In syncsim.Input
//	}
//
//	func (n *Neg) Describe() (string, syncsim.Ports) {
//		return n.ID, syncsim.Ports{
//			Inputs:  []syncsim.InputPort{{ID: "in", Input: n.In}},
//			Kind:    syncsim.Combinatorial,
//			Outputs: []string{"out"},
//		}
//	}
//
//	func (n *Neg) Rewire(port string, in syncsim.Input) {
//		if port == "in" {
//			n.In = in
//		}
//	}
//
//	func (n *Neg) Evaluate(s *syncsim.State) error {
//		v, err := s.In(0).Int32()
//		if err != nil {
//			s.Out(0, syncsim.Unknown)
//			return nil
//		}
//		s.Out(0, syncsim.Int(-v))
//		return nil
//	}
//
type Component interface {
	Describe() (string, Ports)
	Rewire(port string, in Input)
	Evaluate(s *State) error
}

// Resetter is implemented by components with authored initial values, like
// a register's initial word or a memory's initial contents. Reset is called
// whenever a fresh state is created and on Simulator.Reset. Writes to s done
// from Reset are immediately visible, including sequential outputs and local
// state.
//
type Resetter interface {
	Reset(s *State)
}

// Pos is the position of a component in an editor. The simulator stores it
// but never interprets it.
//
type Pos struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Positioner is implemented by components that carry a position.
//
type Positioner interface {
	Position() Pos
	SetPosition(Pos)
}
