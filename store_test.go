package syncsim_test

import (
	"bytes"
	"reflect"
	"strconv"
	"strings"
	"testing"

	ss "github.com/db47h/syncsim"
	hl "github.com/db47h/syncsim/hwlib"
	"github.com/db47h/syncsim/hwtest"
)

func counter() []ss.Component {
	return []ss.Component{
		hl.Constant("one", ss.Data(1)),
		hl.Reg("cnt", ss.Int(-3), "in=inc.out"),
		hl.Add("inc", "a=cnt.out, b=one.out"),
		hl.Mem("ram", 16, []uint32{10, 20, 30, 40}, "addr=addr.out, data=cnt.out, we=one.out"),
		hl.Constant("addr", ss.Data(4)),
		hl.Mux("m", 2, "sel=one.out, in0=cnt.out, in1=ram.out"),
		hl.Sext("x", 8, "in=m.out"),
		hl.Stim("s", ss.Data(1), ss.Unknown, ss.Data(3)),
		hl.Assert("chk", "in=inc.out", ss.Int(-2), ss.Int(-1), ss.Unknown, ss.Data(1)),
	}
}

func TestStore(t *testing.T) {
	store, err := ss.NewStore(counter()...)
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 9 {
		t.Fatalf("bad store size %d", store.Len())
	}
	c, ok := store.Lookup("inc")
	if !ok {
		t.Fatal("inc not found")
	}
	if id, _ := c.Describe(); id != "inc" {
		t.Fatalf("Lookup returned %s", id)
	}
	if err = store.Add(hl.Constant("inc", ss.Data(0))); err == nil {
		t.Fatal("expected duplicate id error")
	}
	if !store.Remove("s") || store.Remove("s") || store.Len() != 8 {
		t.Fatal("Remove")
	}
	if _, ok = store.Lookup("s"); ok {
		t.Fatal("s still present")
	}
	// Components returns a copy
	cs := store.Components()
	cs[0] = nil
	if c, _ := store.Lookup("one"); c == nil {
		t.Fatal("store modified through Components")
	}

	// removing a component referenced by others breaks the build
	store.Remove("one")
	_, err = ss.New(store, ss.WithLogger(hwtest.Logger()))
	if err == nil || !strings.Contains(err.Error(), "one.out") {
		t.Fatalf("expected unresolved input error, got %v", err)
	}
}

func TestStoreIndex(t *testing.T) {
	var store ss.Store
	for i := 0; i < 10; i++ {
		if err := store.Add(hl.Constant("c"+strconv.Itoa(i), ss.Data(uint32(i)))); err != nil {
			t.Fatal(err)
		}
	}
	for _, id := range []string{"c0", "c5", "c9", "c3"} {
		if !store.Remove(id) {
			t.Fatalf("Remove(%s) failed", id)
		}
	}
	if err := store.Add(hl.Constant("c5", ss.Data(55))); err != nil {
		t.Fatal(err)
	}
	// lookups agree with the insertion order after removals
	cs := store.Components()
	for _, c := range cs {
		id, _ := c.Describe()
		if l, ok := store.Lookup(id); !ok || l != c {
			t.Fatalf("Lookup(%s) = %v, %v", id, l, ok)
		}
	}
	if id, _ := cs[len(cs)-1].Describe(); id != "c5" || len(cs) != 7 {
		t.Fatalf("bad contents %d, last %s", len(cs), id)
	}
	for _, id := range []string{"c0", "c3", "c9"} {
		if _, ok := store.Lookup(id); ok {
			t.Fatalf("%s still present", id)
		}
	}
}

func TestPersistence(t *testing.T) {
	store, err := ss.NewStore(counter()...)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = store.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := ss.Load(&buf)
	if err != nil {
		t.Fatal(err)
	}

	orig := store.Components()
	cs := loaded.Components()
	if len(cs) != len(orig) {
		t.Fatalf("loaded %d components, expected %d", len(cs), len(orig))
	}
	for i := range cs {
		if reflect.TypeOf(cs[i]) != reflect.TypeOf(orig[i]) {
			t.Fatalf("component %d: type %T, expected %T", i, cs[i], orig[i])
		}
		id1, p1 := orig[i].Describe()
		id2, p2 := cs[i].Describe()
		if id1 != id2 || !reflect.DeepEqual(p1, p2) {
			t.Fatalf("component %d: ports differ:\n%+v\n%+v", i, p1, p2)
		}
		if !reflect.DeepEqual(cs[i], orig[i]) {
			t.Fatalf("component %d: got %+v, expected %+v", i, cs[i], orig[i])
		}
	}

	sim1, err := ss.New(store, ss.WithLogger(hwtest.Logger()))
	if err != nil {
		t.Fatal(err)
	}
	sim2, err := ss.New(loaded, ss.WithLogger(hwtest.Logger()))
	if err != nil {
		t.Fatal(err)
	}
	hwtest.Compare(t, 3, sim1, sim2, "cnt.out", "inc.out", "ram.out", "m.out", "x.out", "s.out")
}

func TestLoadErrors(t *testing.T) {
	td := []struct {
		name string
		in   string
	}{
		{"syntax", `[{"type": "Const"`},
		{"type", `[{"type": "FluxCapacitor", "component": {}}]`},
		{"body", `[{"type": "Const", "component": {"id": 42}}]`},
		{"duplicate", `[{"type": "Const", "component": {"id": "a"}}, {"type": "Const", "component": {"id": "a"}}]`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			if _, err := ss.Load(strings.NewReader(d.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

type unregistered struct{ lazy }

func TestSaveUnregistered(t *testing.T) {
	store, err := ss.NewStore(&unregistered{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = store.Save(&buf); err == nil {
		t.Fatal("expected error saving an unregistered type")
	}
}

func TestRegistry(t *testing.T) {
	names := ss.RegisteredTypes()
	for _, exp := range []string{"Const", "Gate", "Memory", "Register"} {
		found := false
		for _, n := range names {
			if n == exp {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("type %s not registered", exp)
		}
	}
	// registering the same type twice is fine
	ss.RegisterType((*hl.Const)(nil))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-struct type")
		}
	}()
	ss.RegisterType(lazy{})
}

func TestHistory(t *testing.T) {
	sim := hwtest.Build(t, counter()...)
	var h ss.History
	if h.Pop() != nil {
		t.Fatal("Pop on empty history")
	}
	h.Push(sim.State())
	snap := sim.State().Clone()
	hwtest.Clock(t, sim, 2)
	if sim.State().Equal(snap) {
		t.Fatal("state did not change")
	}
	if h.Len() != 1 {
		t.Fatalf("bad history length %d", h.Len())
	}
	// mutating the live state left the snapshot alone
	if s := h.Pop(); s == nil || !s.Equal(snap) {
		t.Fatal("snapshot was modified")
	}
	h.Push(sim.State())
	h.Clear()
	if h.Len() != 0 {
		t.Fatal("Clear")
	}
}
