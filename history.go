// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

// History is a stack of State snapshots. Snapshots are owned copies: mutating
// the live state never changes a pushed snapshot.
//
type History struct {
	s []*State
}

// Push pushes a copy of s.
//
func (h *History) Push(s *State) {
	h.s = append(h.s, s.Clone())
}

// Pop removes and returns the most recent snapshot. It returns nil if the
// history is empty.
//
func (h *History) Pop() *State {
	n := len(h.s)
	if n == 0 {
		return nil
	}
	s := h.s[n-1]
	h.s[n-1] = nil
	h.s = h.s[:n-1]
	return s
}

// Len returns the number of snapshots.
//
func (h *History) Len() int { return len(h.s) }

// Clear drops all snapshots.
//
func (h *History) Clear() {
	for i := range h.s {
		h.s[i] = nil
	}
	h.s = h.s[:0]
}
