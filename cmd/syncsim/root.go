// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/db47h/syncsim"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is set at link time with -ldflags "-X main.Version=...".
var Version string

var rootCmd = &cobra.Command{
	Use:           "syncsim",
	Short:         "A synchronous digital logic simulator.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case getFlag(cmd, "trace"):
			log.SetLevel(log.TraceLevel)
		case getFlag(cmd, "verbose"):
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !getFlag(cmd, "version") {
			cmd.Help()
			return
		}
		v := Version
		if v == "" {
			if info, ok := debug.ReadBuildInfo(); ok {
				v = info.Main.Version
			} else {
				v = "(unknown version)"
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "syncsim", v)
	},
}

func init() {
	rootCmd.Flags().Bool("version", false, "print version and exit")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log build and undo events")
	rootCmd.PersistentFlags().Bool("trace", false, "log every component evaluation")
}

func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}
	return r
}

// load reads a circuit from the named file and builds a simulator for it. A
// condition raised by the initial pass is returned along with the simulator.
//
func load(name string) (*syncsim.Simulator, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	store, err := syncsim.Load(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return syncsim.New(store, syncsim.WithLogger(log.StandardLogger()))
}
