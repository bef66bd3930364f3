// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command hlasmcore is a small interactive shell and batch driver over
// the HLASM front-end core: it tokenizes, field-splits, operand-parses
// and preprocesses source files and prints diagnostics. It exists to
// exercise internal/... end to end, not to replace the macro-engine
// host that embeds this core in production.
package main

import (
	"fmt"
	"os"
)

func main() {
	h := New()

	args := os.Args[1:]
	if len(args) > 0 {
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				exitOnError(err)
			}
			h.RunCommands(file, os.Stdout, false)
			file.Close()
		}
		return
	}

	h.RunCommands(os.Stdin, os.Stdout, true)
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
