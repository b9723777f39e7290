// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check circuit_file",
	Short: "Check that a circuit can be simulated.",
	Long: `Load and build a circuit, then print its evaluation order.
	All wiring errors are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sim, err := load(args[0])
		var c *syncsim.Condition
		if sim == nil {
			return err
		}
		if errors.As(err, &c) {
			log.Warn(c)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "components: %d, outputs: %d\n", sim.Store().Len(), sim.State().Len())
		fmt.Fprintf(w, "order: %s\n", strings.Join(sim.Order(), " "))
		fmt.Fprintf(w, "sequential: %s\n", strings.Join(sim.Sequential(), " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
