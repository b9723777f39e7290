package syncsim_test

import (
	"fmt"
	"io"

	ss "github.com/db47h/syncsim"
	hl "github.com/db47h/syncsim/hwlib"
	"github.com/sirupsen/logrus"
)

// Neg is a custom component negating its input.
//
type Neg struct {
	ID string
	In ss.Input
}

func (n *Neg) Describe() (string, ss.Ports) {
	return n.ID, ss.Ports{
		Inputs:  []ss.InputPort{{ID: "in", Input: n.In}},
		Kind:    ss.Combinatorial,
		Outputs: []string{"out"},
	}
}

func (n *Neg) Rewire(port string, in ss.Input) {
	if port == "in" {
		n.In = in
	}
}

func (n *Neg) Evaluate(s *ss.State) error {
	v, err := s.In(0).Int32()
	if err != nil {
		s.Out(0, ss.Unknown)
		return nil
	}
	s.Out(0, ss.Int(-v))
	return nil
}

func ExampleNew() {
	store, err := ss.NewStore(
		hl.Constant("c5", ss.Data(5)),
		hl.Constant("c3", ss.Data(3)),
		hl.Add("add", "a=c5.out, b=c3.out"),
		&Neg{"neg", ss.MustParseInput("add.out")},
	)
	if err != nil {
		panic(err)
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	sim, err := ss.New(store, ss.WithLogger(l))
	if err != nil {
		panic(err)
	}
	add, _ := sim.Value("add", "out")
	neg, _ := sim.Value("neg", "out")
	v, _ := neg.Int32()
	fmt.Println(add, v, neg.Hex())
	fmt.Println(sim.Order())

	// Output:
	// 8 -8 0xfffffff8
	// [c5 c3 add neg]
}

func ExampleSimulator_Clock() {
	store, _ := ss.NewStore(
		hl.Constant("one", ss.Data(1)),
		hl.Reg("cnt", ss.Data(0), "in=inc.out"),
		hl.Add("inc", "a=cnt.out, b=one.out"),
		hl.Assert("chk", "in=cnt.out", ss.Data(0), ss.Data(1), ss.Data(2), ss.Data(42)),
	)
	l := logrus.New()
	l.SetOutput(io.Discard)
	sim, _ := ss.New(store, ss.WithLogger(l))
	for {
		if err := sim.Clock(); err != nil {
			fmt.Println(err)
			break
		}
		v, _ := sim.Value("cnt", "out")
		fmt.Println(sim.Cycle(), v)
	}
	sim.Unclock()
	fmt.Println(sim.Cycle(), sim.Status())

	// Output:
	// 1 1
	// 2 2
	// assert in chk: cycle 3: expected 42, got 3
	// 2 idle
}
