// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"go.uber.org/multierr"
)

type node struct {
	c     Component
	id    string
	ports Ports
	deps  []int // combinatorial dependents
	deg   int   // incoming combinatorial edges
}

// plan is a fixed evaluation plan for a set of components.
//
type plan struct {
	nodes []node
	order []int // topological order over combinatorial edges
	seq   []int // sequential components, store order
	l     *layout
}

// buildPlan resolves all inputs, allocates output slots and computes the
// evaluation order of cs. All wiring problems are reported at once, combined
// with multierr.
//
func buildPlan(cs []Component) (*plan, error) {
	var errs error

	p := &plan{nodes: make([]node, len(cs))}
	index := make(map[string]int, len(cs))
	for i, c := range cs {
		id, ports := c.Describe()
		p.nodes[i] = node{c: c, id: id, ports: ports}
		if _, ok := index[id]; ok {
			errs = multierr.Append(errs, &DuplicateIDError{ID: id})
			continue
		}
		index[id] = i
		errs = multierr.Append(errs, ports.check(id))
	}

	// resolve inputs and build combinatorial edges.
	for i := range p.nodes {
		n := &p.nodes[i]
		for _, ip := range n.ports.Inputs {
			src, ok := index[ip.Input.ID]
			if !ok || !p.nodes[src].ports.HasOutput(ip.Input.Port) {
				errs = multierr.Append(errs, &UnresolvedInputError{ID: n.id, Port: ip.ID, Input: ip.Input})
				continue
			}
			// sequential components expose stored state: their inputs do
			// not constrain their position in the order.
			if n.ports.Kind == Sequential {
				continue
			}
			p.nodes[src].deps = append(p.nodes[src].deps, i)
			n.deg++
		}
	}
	if errs != nil {
		return nil, errs
	}

	if err := p.sort(); err != nil {
		return nil, err
	}

	l := &layout{
		slots: make(map[Input]int),
		ids:   index,
		nodes: make([]binding, len(p.nodes)),
	}
	for i := range p.nodes {
		n := &p.nodes[i]
		b := &l.nodes[i]
		b.id, b.idx, b.seq = n.id, i, n.ports.Kind == Sequential
		b.outs = make([]int, len(n.ports.Outputs))
		for j, o := range n.ports.Outputs {
			b.outs[j] = len(l.seq)
			l.slots[Input{n.id, o}] = len(l.seq)
			l.seq = append(l.seq, b.seq)
		}
		if b.seq {
			p.seq = append(p.seq, i)
		}
	}
	// slot handles for inputs, in port order.
	for i := range p.nodes {
		b := &l.nodes[i]
		ins := p.nodes[i].ports.Inputs
		b.ins = make([]int, len(ins))
		b.src = make([]Input, len(ins))
		for j, ip := range ins {
			b.ins[j] = l.slots[ip.Input]
			b.src[j] = ip.Input
		}
	}
	p.l = l
	return p, nil
}

// sort runs Kahn's algorithm. Components without inputs are queued first,
// then any other component without incoming combinatorial edges, each group
// in store order.
//
func (p *plan) sort() error {
	deg := make([]int, len(p.nodes))
	queue := make([]int, 0, len(p.nodes))
	for i := range p.nodes {
		deg[i] = p.nodes[i].deg
		if deg[i] == 0 && len(p.nodes[i].ports.Inputs) == 0 {
			queue = append(queue, i)
		}
	}
	for i := range p.nodes {
		if deg[i] == 0 && len(p.nodes[i].ports.Inputs) > 0 {
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		for _, o := range p.nodes[queue[head]].deps {
			if deg[o]--; deg[o] == 0 {
				queue = append(queue, o)
			}
		}
	}
	if len(queue) < len(p.nodes) {
		return p.cycleError(deg)
	}
	p.order = queue
	return nil
}

// cycleError trims the nodes left over by sort down to the ones that sit on
// a cycle (or between two cycles) by repeatedly removing nodes that have no
// dependent left.
//
func (p *plan) cycleError(deg []int) error {
	left := make([]bool, len(p.nodes))
	for i, d := range deg {
		left[i] = d > 0
	}
	for changed := true; changed; {
		changed = false
		for i := range p.nodes {
			if !left[i] {
				continue
			}
			sink := true
			for _, o := range p.nodes[i].deps {
				if left[o] {
					sink = false
					break
				}
			}
			if sink {
				left[i] = false
				changed = true
			}
		}
	}
	e := &CycleError{}
	for i, ok := range left {
		if ok {
			e.IDs = append(e.IDs, p.nodes[i].id)
		}
	}
	return e
}
