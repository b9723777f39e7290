// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package syncsim is a synchronous digital logic simulator for processor
datapaths and other clocked circuits.

A circuit is a Store of Components. Each component declares its input ports,
each bound to the named output of another component, its output ports, and
whether its outputs are Combinatorial (a function of the current inputs) or
Sequential (stored state, like a register).

A Simulator builds a fixed evaluation order from the store, rejecting
dangling inputs and combinatorial loops, then runs clock cycles:

	store, _ := syncsim.NewStore(
		hwlib.Constant("c5", syncsim.Data(5)),
		hwlib.Constant("c3", syncsim.Data(3)),
		hwlib.Add("add", "a=c5.out, b=c3.out"),
	)
	sim, err := syncsim.New(store)
	if err != nil {
		// wiring error
	}
	v, _ := sim.Value("add", "out") // 8, before any clock

Each Clock can be undone with Unclock, and Reset brings the circuit back to
its initial state. Components report recoverable runtime events (failed
assertions, halt requests) as a *Condition.

New component types only need to implement the Component interface, and be
registered with RegisterType in order to be saved and loaded with a Store.
*/
package syncsim
