// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] circuit_file",
	Short: "Simulate a circuit.",
	Long: `Simulate a circuit for a number of clock cycles, printing the watched
	outputs after the initial pass and after each cycle. The run stops on the
	first condition; a halt is a normal termination.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cycles, _ := cmd.Flags().GetUint("cycles")
		watch, _ := cmd.Flags().GetStringSlice("watch")

		sim, err := load(args[0])
		if sim == nil {
			return err
		}
		r, err := newRunner(sim, watch, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		r.json = getFlag(cmd, "json")
		if getFlag(cmd, "step") {
			return r.interactive()
		}

		cond := sim.Condition()
		if err = r.print(cond); err != nil {
			return err
		}
		for i := uint(0); cond == nil && i < cycles; i++ {
			err = sim.Clock()
			if cond = asCondition(err); cond == nil && err != nil {
				return err
			}
			if err = r.print(cond); err != nil {
				return err
			}
		}
		if cond != nil && cond.Kind != syncsim.Halt {
			return cond
		}
		return nil
	},
}

func init() {
	runCmd.Flags().UintP("cycles", "n", 10, "number of clock cycles to run")
	runCmd.Flags().StringSliceP("watch", "w", nil, "outputs to print, as id.port (default all)")
	runCmd.Flags().Bool("json", false, "print one JSON object per cycle")
	runCmd.Flags().Bool("step", false, "interactive mode, one cycle at a time")
	rootCmd.AddCommand(runCmd)
}

func asCondition(err error) *syncsim.Condition {
	var c *syncsim.Condition
	if errors.As(err, &c) {
		return c
	}
	return nil
}

type record struct {
	Cycle     uint64                    `json:"cycle"`
	Values    map[string]syncsim.Signal `json:"values"`
	Condition string                    `json:"condition,omitempty"`
}

// runner prints watched outputs.
//
type runner struct {
	sim  *syncsim.Simulator
	refs []syncsim.Input
	prev []syncsim.Signal
	json bool
	w    io.Writer
	esc  *term.EscapeCodes // highlight changes when set
}

func newRunner(sim *syncsim.Simulator, watch []string, w io.Writer) (*runner, error) {
	r := &runner{sim: sim, w: w}
	if len(watch) == 0 {
		for _, c := range sim.Store().Components() {
			id, ports := c.Describe()
			for _, o := range ports.Outputs {
				r.refs = append(r.refs, syncsim.NewInput(id, o))
			}
		}
	}
	for _, s := range watch {
		in, err := syncsim.ParseInput(s)
		if err != nil {
			return nil, err
		}
		if _, err = sim.Value(in.ID, in.Port); err != nil {
			return nil, err
		}
		r.refs = append(r.refs, in)
	}
	r.prev = make([]syncsim.Signal, len(r.refs))
	return r, nil
}

func (r *runner) print(c *syncsim.Condition) error {
	if r.json {
		rec := record{Cycle: r.sim.Cycle(), Values: make(map[string]syncsim.Signal, len(r.refs))}
		for _, in := range r.refs {
			rec.Values[in.String()], _ = r.sim.Value(in.ID, in.Port)
		}
		if c != nil {
			rec.Condition = c.Error()
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, err = r.w.Write(append(b, '\n'))
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%6d", r.sim.Cycle())
	for i, in := range r.refs {
		v, _ := r.sim.Value(in.ID, in.Port)
		s := v.String()
		if r.esc != nil && v != r.prev[i] {
			s = string(r.esc.Yellow) + s + string(r.esc.Reset)
		}
		r.prev[i] = v
		b.WriteString(" " + in.String() + "=" + s)
	}
	if c != nil {
		b.WriteString(" ! " + c.Error())
	}
	b.WriteByte('\n')
	_, err := io.WriteString(r.w, b.String())
	return err
}

const stepHelp = "commands: <enter> or c: clock, u: unclock, r: reset, q: quit"

// interactive runs the step mode on the controlling terminal.
//
func (r *runner) interactive() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("step mode requires a terminal")
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, state)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, "> ")
	r.w, r.esc, r.json = t, t.Escape, false
	log.SetOutput(t)
	defer log.SetOutput(os.Stderr)

	fmt.Fprintln(t, stepHelp)
	if err = r.print(r.sim.Condition()); err != nil {
		return err
	}
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch strings.TrimSpace(line) {
		case "", "c":
			err = r.sim.Clock()
		case "u":
			if !r.sim.Unclock() {
				fmt.Fprintln(t, "history is empty")
				continue
			}
		case "r":
			err = r.sim.Reset()
		case "q":
			return nil
		default:
			fmt.Fprintln(t, stepHelp)
			continue
		}
		c := asCondition(err)
		if err != nil && c == nil {
			return err
		}
		if err = r.print(c); err != nil {
			return err
		}
	}
}
