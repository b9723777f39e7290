package hwlib_test

import (
	"testing"

	ss "github.com/db47h/syncsim"
	hl "github.com/db47h/syncsim/hwlib"
	"github.com/db47h/syncsim/hwtest"
	"github.com/pkg/errors"
)

func expectCondition(t *testing.T, err error, id string, kind ss.ConditionKind) {
	t.Helper()
	var c *ss.Condition
	if !errors.As(err, &c) {
		t.Fatalf("expected a condition, got %v", err)
	}
	if c.ID != id || c.Kind != kind {
		t.Fatalf("expected %s condition in %s, got %v", kind, id, c)
	}
}

func peek(t *testing.T, sim *ss.Simulator, m *hl.Memory, addr uint32) uint32 {
	t.Helper()
	v, ok := hl.Peek(sim.State(), m, addr)
	if !ok {
		t.Fatalf("Peek(%#x) failed", addr)
	}
	return v
}

func TestMem(t *testing.T) {
	m := hl.Mem("ram", 4, []uint32{1, 2}, "addr=addr.out, data=data.out, we=we.out")
	sim := hwtest.Build(t,
		hl.Stim("addr", ss.Data(0), ss.Data(0), ss.Data(4), ss.Data(4), ss.Data(12)),
		hl.Stim("data", ss.Data(100), ss.Unknown, ss.Data(7), ss.Data(8), ss.Unknown),
		hl.Stim("we", ss.Data(1), ss.Data(0), ss.Data(1), ss.Data(0), ss.Data(0)),
		m,
	)
	hwtest.Expect(t, sim, "ram.out", ss.Unknown)
	if peek(t, sim, m, 0) != 1 || peek(t, sim, m, 4) != 2 || peek(t, sim, m, 8) != 0 {
		t.Fatal("bad initial contents")
	}

	// read before write
	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Data(1))
	if v := peek(t, sim, m, 0); v != 100 {
		t.Fatalf("mem[0] = %d, expected 100", v)
	}

	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Data(100))
	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Data(2))
	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Data(7))
	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Data(0))

	// undo restores the previous contents
	for i := 0; i < 5; i++ {
		if !sim.Unclock() {
			t.Fatal("Unclock failed")
		}
	}
	hwtest.Expect(t, sim, "ram.out", ss.Unknown)
	if v := peek(t, sim, m, 0); v != 1 {
		t.Fatalf("mem[0] = %d after unclock, expected 1", v)
	}

	if _, ok := hl.Peek(sim.State(), m, 16); ok {
		t.Fatal("Peek out of range")
	}
	if _, ok := hl.Peek(sim.State(), m, 2); ok {
		t.Fatal("Peek unaligned")
	}
}

func TestMemWriteStaged(t *testing.T) {
	var seen []ss.Signal
	m := hl.Mem("ram", 2, []uint32{5}, "addr=zero.out, data=data.out, we=one.out")
	sim := hwtest.Build(t,
		hl.Constant("zero", ss.Data(0)),
		hl.Constant("one", ss.Data(1)),
		hl.Stim("data", ss.Data(10), ss.Data(20), ss.Unknown),
		m,
		hl.NewProbe("p", "in=ram.out", func(_ uint64, v ss.Signal) { seen = append(seen, v) }),
	)
	hwtest.Clock(t, sim, 2)
	hwtest.Expect(t, sim, "ram.out", ss.Data(10))
	if v := peek(t, sim, m, 0); v != 20 {
		t.Fatalf("mem[0] = %d, expected 20", v)
	}
	// initial pass, then one value per cycle, each read before the write
	exp := []ss.Signal{ss.Unknown, ss.Data(5), ss.Data(10)}
	if len(seen) != len(exp) {
		t.Fatalf("probe saw %v, expected %v", seen, exp)
	}
	for i := range exp {
		if seen[i] != exp[i] {
			t.Fatalf("probe saw %v, expected %v", seen, exp)
		}
	}

	// a failed cycle commits nothing
	expectCondition(t, sim.Clock(), "ram", ss.Illegal)
	if v := peek(t, sim, m, 0); v != 20 {
		t.Fatalf("mem[0] = %d after failed write, expected 20", v)
	}
	if sim.Status() != ss.StatusFailed {
		t.Fatalf("bad status %v", sim.Status())
	}
}

func TestMemIllegal(t *testing.T) {
	td := []struct {
		name string
		addr ss.Signal
		data ss.Signal
		we   ss.Signal
	}{
		{"unknown we", ss.Data(0), ss.Data(0), ss.Unknown},
		{"unknown address", ss.Unknown, ss.Data(0), ss.Data(1)},
		{"unknown data", ss.Data(0), ss.Unknown, ss.Data(1)},
		{"unaligned", ss.Data(2), ss.Data(0), ss.Data(0)},
		{"out of range", ss.Data(16), ss.Data(0), ss.Data(0)},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			sim := hwtest.Build(t,
				hl.Constant("addr", d.addr),
				hl.Constant("data", d.data),
				hl.Constant("we", d.we),
				hl.Mem("ram", 4, nil, "addr=addr.out, data=data.out, we=we.out"),
			)
			expectCondition(t, sim.Clock(), "ram", ss.Illegal)
		})
	}

	// reading from an unknown address is fine
	sim := hwtest.Build(t,
		hl.Constant("addr", ss.Unknown),
		hl.Constant("zero", ss.Data(0)),
		hl.Mem("ram", 4, nil, "addr=addr.out, data=zero.out, we=zero.out"),
	)
	hwtest.Clock(t, sim, 1)
	hwtest.Expect(t, sim, "ram.out", ss.Unknown)
}
