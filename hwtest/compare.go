// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"io"
	"strings"
	"testing"

	"github.com/db47h/syncsim"
	"github.com/sirupsen/logrus"
)

// Logger returns a logger discarding all output, suitable for tests that
// deliberately raise conditions.
//
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Build builds a simulator for the given components and fails the test on
// any error, including a condition raised by the initial pass.
//
func Build(t testing.TB, cs ...syncsim.Component) *syncsim.Simulator {
	t.Helper()
	store, err := syncsim.NewStore(cs...)
	if err != nil {
		t.Fatal(err)
	}
	sim, err := syncsim.New(store, syncsim.WithLogger(Logger()))
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

// Value returns the value of the output referenced by ref ("id.port").
//
func Value(t testing.TB, sim *syncsim.Simulator, ref string) syncsim.Signal {
	t.Helper()
	in, err := syncsim.ParseInput(ref)
	if err != nil {
		t.Fatal(err)
	}
	v, err := sim.Value(in.ID, in.Port)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// Expect checks that the output referenced by ref holds want.
//
func Expect(t testing.TB, sim *syncsim.Simulator, ref string, want syncsim.Signal) {
	t.Helper()
	if got := Value(t, sim, ref); got != want {
		t.Errorf("cycle %d: %s = %v, expected %v", sim.Cycle(), ref, got, want)
	}
}

// Clock runs n clock cycles and fails the test on any error.
//
func Clock(t testing.TB, sim *syncsim.Simulator, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := sim.Clock(); err != nil {
			t.Fatalf("cycle %d: %v", sim.Cycle(), err)
		}
	}
}

// Compare clocks two simulators side by side for the given number of cycles
// and checks that the listed outputs ("id.port") hold the same values after
// the initial pass and after every cycle.
//
// It is typically used to check a composite circuit against a reference
// implementation.
//
func Compare(t testing.TB, cycles int, sim1, sim2 *syncsim.Simulator, refs ...string) {
	t.Helper()

	check := func() {
		t.Helper()
		var b strings.Builder
		for _, r := range refs {
			v1, v2 := Value(t, sim1, r), Value(t, sim2, r)
			if v1 != v2 {
				b.WriteString("\n\t" + r + ": " + v1.String() + " != " + v2.String())
			}
		}
		if b.Len() > 0 {
			t.Fatalf("cycle %d: outputs differ:%s", sim1.Cycle(), b.String())
		}
	}

	check()
	for i := 0; i < cycles; i++ {
		err1, err2 := sim1.Clock(), sim2.Clock()
		if err1 != nil || err2 != nil {
			t.Fatalf("cycle %d: %v / %v", sim1.Cycle(), err1, err2)
		}
		check()
	}
}
