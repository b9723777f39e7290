// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package syncsim

import (
	"io"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// Store is an ordered collection of components with unique ids. Order is
// insertion order; it has no effect on simulation.
//
// A component's id is recorded when it is added. Renaming a component in
// place is not supported: remove it and add it back.
//
type Store struct {
	cs   []Component
	ids  []string
	byID map[string]int
}

// NewStore returns a new store holding the given components.
//
func NewStore(cs ...Component) (*Store, error) {
	s := &Store{byID: make(map[string]int, len(cs))}
	for _, c := range cs {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends c to the store. It fails with a *DuplicateIDError if a
// component with the same id is already present.
//
func (s *Store) Add(c Component) error {
	id, _ := c.Describe()
	if _, ok := s.byID[id]; ok {
		return &DuplicateIDError{ID: id}
	}
	if s.byID == nil {
		s.byID = make(map[string]int)
	}
	s.byID[id] = len(s.cs)
	s.cs = append(s.cs, c)
	s.ids = append(s.ids, id)
	return nil
}

// Lookup returns the component with the given id.
//
func (s *Store) Lookup(id string) (Component, bool) {
	if i, ok := s.byID[id]; ok {
		return s.cs[i], true
	}
	return nil, false
}

// Remove removes the component with the given id and reports whether it was
// found. Inputs of other components referencing it are left as is and will
// fail the next build.
//
func (s *Store) Remove(id string) bool {
	i, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	copy(s.cs[i:], s.cs[i+1:])
	copy(s.ids[i:], s.ids[i+1:])
	s.cs[len(s.cs)-1] = nil
	s.cs = s.cs[:len(s.cs)-1]
	s.ids = s.ids[:len(s.ids)-1]
	for ; i < len(s.ids); i++ {
		s.byID[s.ids[i]] = i
	}
	return true
}

// Len returns the number of components in the store.
//
func (s *Store) Len() int { return len(s.cs) }

// Components returns the components in insertion order.
//
func (s *Store) Components() []Component {
	return append([]Component(nil), s.cs...)
}

// entry is the persisted form of a component: its registered type name and
// its own JSON encoding.
//
type entry struct {
	Type      string          `json:"type"`
	Component json.RawMessage `json:"component"`
}

// MarshalJSON encodes the store as a list of tagged components. Every
// component type must have been registered with RegisterType.
//
func (s *Store) MarshalJSON() ([]byte, error) {
	es, err := s.entries()
	if err != nil {
		return nil, err
	}
	return json.Marshal(es)
}

func (s *Store) entries() ([]entry, error) {
	es := make([]entry, 0, len(s.cs))
	for _, c := range s.cs {
		name, err := typeName(c)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(c)
		if err != nil {
			id, _ := c.Describe()
			return nil, errors.Wrap(err, "encode "+id)
		}
		es = append(es, entry{name, b})
	}
	return es, nil
}

// UnmarshalJSON decodes a store encoded by MarshalJSON, reconstructing each
// component as the concrete type it was saved as.
//
func (s *Store) UnmarshalJSON(b []byte) error {
	var es []entry
	if err := json.Unmarshal(b, &es); err != nil {
		return errors.Wrap(err, "decode store")
	}
	ns := new(Store)
	for i, e := range es {
		c, err := newComponent(e.Type)
		if err != nil {
			return errors.Wrapf(err, "component #%d", i)
		}
		if err = json.Unmarshal(e.Component, c); err != nil {
			return errors.Wrapf(err, "decode component #%d (%s)", i, e.Type)
		}
		if err = ns.Add(c); err != nil {
			return err
		}
	}
	*s = *ns
	return nil
}

// Save writes the store to w as indented JSON.
//
func (s *Store) Save(w io.Writer) error {
	es, err := s.entries()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(es, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode store")
	}
	_, err = w.Write(append(b, '\n'))
	return errors.Wrap(err, "save store")
}

// Load reads a store saved with Save.
//
func Load(r io.Reader) (*Store, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "load store")
	}
	s := new(Store)
	if err = s.UnmarshalJSON(b); err != nil {
		return nil, err
	}
	return s, nil
}
