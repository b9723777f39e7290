// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Status is the state of a Simulator.
//
type Status int

// Simulator states.
const (
	// StatusUnbuilt means there is no valid evaluation plan: the last build
	// failed or a component failed fatally.
	StatusUnbuilt Status = iota
	// StatusIdle is the normal state between cycles.
	StatusIdle
	// StatusFailed means that the last pass stopped on a Condition. The
	// partial state is available and clocking again resumes from it.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnbuilt:
		return "unbuilt"
	case StatusIdle:
		return "idle"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// An Option configures a Simulator.
//
type Option func(s *Simulator)

// WithLogger sets the logger used by the simulator. The default is
// logrus.StandardLogger().
//
func WithLogger(l *logrus.Logger) Option {
	return func(s *Simulator) { s.log = logrus.NewEntry(l) }
}

// WithHistory enables or disables state snapshots before each clock cycle.
// Unclock is a no-op when history is disabled. The default is enabled.
//
func WithHistory(enabled bool) Option {
	return func(s *Simulator) { s.history = enabled }
}

// Simulator runs clock cycles on the components of a Store.
//
// Combinatorial components are evaluated in dependency order (propagate).
// On each clock edge, sequential components sample their settled inputs and
// stage their next value (sample), staged values replace the exposed outputs
// of sequential components (commit), and a new propagate pass settles the
// combinatorial outputs. Throughout propagate, sequential components expose
// the value committed by the last clock edge.
//
// A Simulator is not safe for concurrent use.
//
type Simulator struct {
	store   *Store
	log     *logrus.Entry
	history bool

	p      *plan
	state  *State
	h      History
	status Status
	cond   *Condition
}

// New builds a simulator for the components in store and runs an initial
// propagate pass so that constants and combinatorial values derived from
// them are visible before the first clock.
//
// Build errors are returned with a nil Simulator. If the initial pass raises
// a Condition, New returns both the Simulator and the *Condition.
//
func New(store *Store, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		store:   store,
		log:     logrus.NewEntry(logrus.StandardLogger()),
		history: true,
	}
	for _, o := range opts {
		o(s)
	}
	err := s.Build()
	if s.status == StatusUnbuilt {
		return nil, err
	}
	return s, err
}

// Build rebuilds the evaluation plan from the current contents of the store
// and resets the simulation state. It must be called after structural
// changes to the store. On failure, the simulator is left unbuilt.
//
// Build errors are *DuplicateIDError, *PortError, *UnresolvedInputError or
// *CycleError values; wiring errors are combined with go.uber.org/multierr.
//
func (s *Simulator) Build() error {
	s.p, s.state, s.cond = nil, nil, nil
	s.status = StatusUnbuilt
	s.h.Clear()

	p, err := buildPlan(s.store.Components())
	if err != nil {
		s.log.WithError(err).Debug("build failed")
		return err
	}
	s.p = p
	s.state = newState(p.l)
	s.status = StatusIdle
	s.log.WithFields(logrus.Fields{
		"components": len(p.nodes),
		"sequential": len(p.seq),
		"slots":      s.state.Len(),
	}).Debug("circuit built")

	return s.reset()
}

// Clock runs one clock cycle: sequential components sample the settled
// values left by the previous pass and the commit makes their staged values
// visible, then the cycle counter is incremented and combinatorial components
// are evaluated again from the new sequential values. Between calls to Clock,
// every combinatorial output is consistent with the sequential outputs.
//
// If a component raises a Condition, the pass stops immediately: outputs
// written so far remain visible and the *Condition is returned. A Condition
// raised while sampling leaves nothing committed. After a Condition, the next
// Clock first re-runs the interrupted pass and only samples if it completes.
// Other evaluation errors are fatal and leave the simulator unbuilt.
//
func (s *Simulator) Clock() error {
	if s.status == StatusUnbuilt {
		return ErrUnbuilt
	}
	if s.status == StatusFailed {
		s.cond = nil
		s.status = StatusIdle
		if err := s.propagate(); err != nil {
			return err
		}
	}
	if s.history {
		s.h.Push(s.state)
	}
	s.cond = nil

	st := s.state
	st.phase = phaseSample
	for _, i := range s.p.seq {
		if err := s.eval(i); err != nil {
			st.discard()
			st.end()
			return err
		}
	}
	st.commit()
	st.cycle++
	st.end()

	return s.propagate()
}

// Reset restores every output to Unknown or to its authored initial value,
// clears the history and runs the initial propagate pass again.
//
func (s *Simulator) Reset() error {
	if s.status == StatusUnbuilt {
		return ErrUnbuilt
	}
	return s.reset()
}

// Unclock restores the state as it was before the last Clock. It returns
// false and does nothing if the history is empty.
//
func (s *Simulator) Unclock() bool {
	if s.status == StatusUnbuilt {
		return false
	}
	prev := s.h.Pop()
	if prev == nil {
		return false
	}
	s.state.restore(prev)
	s.cond = nil
	s.status = StatusIdle
	s.log.WithField("cycle", prev.cycle).Debug("unclock")
	return true
}

// Rewire connects the input port of component id to in, then rebuilds the
// simulator. Unknown port names are ignored by components; the rebuild still
// happens.
//
func (s *Simulator) Rewire(id, port string, in Input) error {
	c, ok := s.store.Lookup(id)
	if !ok {
		return errors.Errorf("rewire: no component with id %s", id)
	}
	c.Rewire(port, in)
	return s.Build()
}

// Value returns the current value of the output port of component id.
//
func (s *Simulator) Value(id, port string) (Signal, error) {
	if s.state == nil {
		return Unknown, ErrUnbuilt
	}
	v, ok := s.state.Value(Input{id, port})
	if !ok {
		return Unknown, errors.Errorf("no output %s.%s", id, port)
	}
	return v, nil
}

// State returns the live simulation state. It must be treated as read-only.
//
func (s *Simulator) State() *State { return s.state }

// Store returns the component store.
//
func (s *Simulator) Store() *Store { return s.store }

// Status returns the simulator status.
//
func (s *Simulator) Status() Status { return s.status }

// Condition returns the Condition that stopped the last pass, if any.
//
func (s *Simulator) Condition() *Condition { return s.cond }

// Cycle returns the number of clock cycles committed since the last reset.
//
func (s *Simulator) Cycle() uint64 {
	if s.state == nil {
		return 0
	}
	return s.state.cycle
}

// HistoryLen returns the number of cycles that can be undone.
//
func (s *Simulator) HistoryLen() int { return s.h.Len() }

// Order returns the component ids in evaluation order.
//
func (s *Simulator) Order() []string {
	if s.p == nil {
		return nil
	}
	ids := make([]string, len(s.p.order))
	for i, n := range s.p.order {
		ids[i] = s.p.nodes[n].id
	}
	return ids
}

// Sequential returns the ids of sequential components in store order.
//
func (s *Simulator) Sequential() []string {
	if s.p == nil {
		return nil
	}
	ids := make([]string, len(s.p.seq))
	for i, n := range s.p.seq {
		ids[i] = s.p.nodes[n].id
	}
	return ids
}

func (s *Simulator) reset() error {
	st := s.state
	st.clear()
	st.phase = phaseReset
	for i := range s.p.nodes {
		if r, ok := s.p.nodes[i].c.(Resetter); ok {
			st.bind(i)
			r.Reset(st)
		}
	}
	st.end()
	s.h.Clear()
	s.cond = nil
	s.status = StatusIdle
	return s.propagate()
}

// propagate evaluates combinatorial components in plan order.
//
func (s *Simulator) propagate() error {
	st := s.state
	st.beginPass()
	defer st.end()
	for _, i := range s.p.order {
		if s.p.nodes[i].ports.Kind == Sequential {
			continue
		}
		if err := s.eval(i); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) eval(i int) error {
	n := &s.p.nodes[i]
	if s.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		s.log.WithFields(logrus.Fields{"component": n.id, "cycle": s.state.cycle}).Trace("evaluate")
	}
	s.state.bind(i)
	err := n.c.Evaluate(s.state)
	if err == nil {
		return nil
	}
	var c *Condition
	if errors.As(err, &c) {
		s.cond = c
		s.status = StatusFailed
		s.log.WithFields(logrus.Fields{"component": c.ID, "cycle": s.state.cycle, "kind": c.Kind}).Warn(c.Msg)
		return c
	}
	s.status = StatusUnbuilt
	s.log.WithField("component", n.id).WithError(err).Error("evaluation failed")
	return errors.Wrapf(err, "evaluate %s", n.id)
}
