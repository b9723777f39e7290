// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command syncsim loads, checks and runs circuits saved as JSON.
//
package main

import (
	"os"

	_ "github.com/db47h/syncsim/hwlib" // component types
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		report(err)
		os.Exit(1)
	}
}

// report logs each error combined in err.
//
func report(err error) {
	for _, e := range multierr.Errors(err) {
		log.Error(e)
	}
}
