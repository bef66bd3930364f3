// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/beevik/cmd"
	"github.com/beevik/term"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/config"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
)

// App holds the shell's session state: the active Config (system
// architecture, GOFF, DB2/CICS preprocessor options), the current
// input/output streams, and whatever the last resolved command was so
// a blank line can repeat it.
type App struct {
	cfg         *config.Config
	trace       *diag.Trace
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	colorize    bool
	lastCmd     *cmd.Selection
}

// New returns an App with the default configuration.
func New() *App {
	return &App{cfg: config.New()}
}

// RunCommands accepts shell commands from r and writes results to w.
// interactive controls whether a prompt is displayed; colorize is
// additionally gated on w actually being a terminal, since ANSI
// severity coloring of diagnostics only belongs on an interactive
// tty, not a piped or redirected batch run.
func (a *App) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	a.input = bufio.NewScanner(r)
	a.output = bufio.NewWriter(w)
	a.interactive = interactive

	if f, ok := w.(interface{ Fd() uintptr }); ok {
		a.colorize = term.IsTerminal(int(f.Fd()))
	}

	for {
		a.prompt()

		line, err := a.getLine()
		if err != nil {
			break
		}

		if err := a.processCommand(line); err != nil {
			a.println(err)
		}
	}
}

func (a *App) processCommand(line string) error {
	var sel cmd.Selection
	if line != "" {
		var err error
		sel, err = cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			a.println("Command not found.")
			return nil
		case err == cmd.ErrAmbiguous:
			a.println("Command is ambiguous.")
			return nil
		case err != nil:
			a.printf("ERROR: %v.\n", err)
			return nil
		}
	} else if a.lastCmd != nil {
		sel = *a.lastCmd
	}

	if sel.Command == nil {
		return nil
	}
	if sel.Command.Data == nil && sel.Command.Subtree != nil {
		a.displayCommands(sel.Command.Subtree)
		return nil
	}

	a.lastCmd = &sel
	handler := sel.Command.Data.(func(*App, cmd.Selection) error)
	return handler(a, sel)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.output, format, args...)
	a.flush()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.output, args...)
	a.flush()
}

func (a *App) flush() {
	a.output.Flush()
}

func (a *App) getLine() (string, error) {
	if a.input.Scan() {
		return a.input.Text(), nil
	}
	if a.input.Err() != nil {
		return "", a.input.Err()
	}
	return "", io.EOF
}

func (a *App) prompt() {
	if !a.interactive {
		return
	}
	a.printf("hlasm> ")
}
