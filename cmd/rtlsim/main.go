// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command rtlsim runs the built-in circuits of the rtlsim part library against
// test vectors.
//
// Usage:
//
//	rtlsim run --config sim.yaml
//	rtlsim run --circuit arbiter --width 4 --cycles 10 --vcd out.vcd
//	rtlsim groups --circuit sorter
//
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
