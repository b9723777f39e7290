// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"
	"sort"
	"strings"

	"github.com/db47h/syncsim"
	hl "github.com/db47h/syncsim/hwlib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var examples = map[string]func() []syncsim.Component{
	// 5 + 3, checked on every cycle.
	"adder": func() []syncsim.Component {
		return []syncsim.Component{
			hl.Constant("c5", syncsim.Data(5)),
			hl.Constant("c3", syncsim.Data(3)),
			hl.Add("add", "a=c5.out, b=c3.out"),
			hl.Assert("chk", "in=add.out", syncsim.Data(8), syncsim.Data(8), syncsim.Data(8)),
		}
	},
	// a counter logging its value to memory until it runs out of space.
	"counter": func() []syncsim.Component {
		return []syncsim.Component{
			hl.Constant("one", syncsim.Data(1)),
			hl.Reg("cnt", syncsim.Data(0), "in=inc.out"),
			hl.Add("inc", "a=cnt.out, b=one.out"),
			hl.Add("x2", "a=cnt.out, b=cnt.out"),
			hl.Add("x4", "a=x2.out, b=x2.out"),
			hl.Mem("ram", 16, nil, "addr=x4.out, data=cnt.out, we=one.out"),
		}
	},
}

func exampleNames() []string {
	var names []string
	for n := range examples {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var exampleCmd = &cobra.Command{
	Use:   "example [flags] name",
	Short: "Write a demo circuit.",
	Long:  "Write a demo circuit as JSON. Available circuits: " + strings.Join(exampleNames(), ", ") + ".",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, ok := examples[args[0]]
		if !ok {
			return errors.Errorf("unknown example %q", args[0])
		}
		store, err := syncsim.NewStore(fn()...)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		if out == "" || out == "-" {
			return store.Save(cmd.OutOrStdout())
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err = store.Save(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func init() {
	exampleCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exampleCmd)
}
