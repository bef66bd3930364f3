// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/fields"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc/cics"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc/db2"
)

func (a *App) cmdQuit(c cmd.Selection) error {
	a.println("Goodbye.")
	os.Exit(0)
	return nil
}

func (a *App) cmdTrace(c cmd.Selection) error {
	on := len(c.Args) == 0 || strings.EqualFold(c.Args[0], "on")
	a.trace = diag.NewTrace(a.output, on)
	a.printf("Tracing %s.\n", onOff(on))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (a *App) cmdShow(c cmd.Selection) error {
	a.cfg.Display(a.output)
	a.flush()
	return nil
}

func (a *App) cmdSet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		a.println("Usage: set <field> <value>")
		return nil
	}
	key, raw := c.Args[0], strings.Join(c.Args[1:], " ")
	if a.cfg.Kind(key).String() == "string" {
		if err := a.cfg.Set(key, raw); err != nil {
			a.printf("ERROR: %v\n", err)
		}
		return nil
	}
	if a.cfg.Kind(key).String() == "bool" {
		b, err := stringToBool(raw)
		if err != nil {
			a.printf("ERROR: %v\n", err)
			return nil
		}
		if err := a.cfg.Set(key, b); err != nil {
			a.printf("ERROR: %v\n", err)
		}
		return nil
	}
	if err := a.cfg.Set(key, raw); err != nil {
		a.printf("ERROR: %v\n", err)
	}
	return nil
}

func (a *App) cmdCatalogLookup(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: catalog lookup <name>")
		return nil
	}
	name := strings.ToUpper(c.Args[0])
	inst, ok := instr.LookupAny(name)
	if !ok {
		a.printf("%s: not found\n", name)
		return nil
	}
	if !instr.Available(inst, a.cfg.SystemArchitecture) {
		a.printf("%s: not available on architecture %s\n", name, a.cfg.SystemArchitecture)
		return nil
	}
	a.printInstruction(inst)
	return nil
}

func (a *App) cmdCatalogComplete(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: catalog complete <prefix>")
		return nil
	}
	inst, ok := instr.Complete(c.Args[0])
	if !ok {
		a.printf("%s: no unambiguous match\n", c.Args[0])
		return nil
	}
	a.printInstruction(inst)
	return nil
}

// readSource returns filename's decoded physical lines, or reports an
// error to the shell and a nil slice.
func (a *App) readSource(filename string) ([]charstream.Line, bool) {
	f, err := os.Open(filename)
	if err != nil {
		a.printf("ERROR: %v\n", err)
		return nil, false
	}
	defer f.Close()

	lines, err := charstream.SplitLines(f)
	if err != nil {
		a.printf("ERROR: %v\n", err)
		return nil, false
	}
	return lines, true
}

func (a *App) cmdTokenize(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: tokenize <filename>")
		return nil
	}
	lines, ok := a.readSource(c.Args[0])
	if !ok {
		return nil
	}

	a.trace.Section("tokenize")
	logical := preproc.SegmentLogicalLines(lines, 0, a.regime())
	for i, ll := range logical {
		a.trace.Linef("logical line %d: %d segment(s)", i, len(ll.Segments))
		a.dumpTokens(ll, i == 0)
	}
	return nil
}

func (a *App) cmdParse(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: parse <filename>")
		return nil
	}
	lines, ok := a.readSource(c.Args[0])
	if !ok {
		return nil
	}

	a.trace.Section("parse")
	sink := diag.NewSink()
	regime := a.regime()
	stmtIdx := 0
	for i := 0; i < len(lines); {
		var ll *logline.Line
		ll, i = nextLogicalLine(lines, i, regime)
		a.trace.Linef("statement %d", stmtIdx)
		stmt := fields.Split(ll, stmtIdx == 0, sink)
		stmtIdx++
		a.dumpStatement(stmt)

		var inst *instr.Instruction
		if stmt.Instruction != nil {
			inst, _ = instr.LookupAnyAvailable(strings.ToUpper(stmt.Instruction.Name), a.cfg.SystemArchitecture)
		}
		parsed := fields.Dispatch(stmt, inst, a.cfg.GOFF, sink)
		a.dumpParsed(parsed)

		// An ICTL statement resets the column regime for every
		// following statement.
		if stmt.Instruction != nil && strings.EqualFold(stmt.Instruction.Name, "ICTL") {
			if next, ok := ictlRegime(stmt); ok {
				regime = next
			} else {
				a.printf("  invalid ICTL operands; regime unchanged\n")
			}
		}
	}
	a.dumpDiagnostics(sink)
	return nil
}

// nextLogicalLine assembles one logical line from lines[start:] under
// regime, returning the line and the index one past its last segment.
func nextLogicalLine(lines []charstream.Line, start int, regime logline.Regime) (*logline.Line, int) {
	asm := logline.NewAssembler(regime)
	i := start
	continued := asm.Append(lines[i], i)
	i++
	for continued && i < len(lines) {
		continued = asm.Append(lines[i], i)
		i++
	}
	return asm.Finish(), i
}

// ictlRegime builds the column regime an ICTL statement's 1-3 numeric
// operands configure. An omitted end column defaults to 71; an omitted
// continue column disables continuation.
func ictlRegime(stmt *fields.Statement) (logline.Regime, bool) {
	var nums []int
	if stmt.Operand != nil {
		for _, t := range stmt.Operand.Tokens {
			if t.Kind != lexer.NUM {
				continue
			}
			n, err := strconv.Atoi(t.Text)
			if err != nil {
				return logline.Regime{}, false
			}
			nums = append(nums, n)
		}
	}
	if len(nums) < 1 || len(nums) > 3 {
		return logline.Regime{}, false
	}
	begin := nums[0]
	end := 71
	cont := 0
	if len(nums) > 1 {
		end = nums[1]
	}
	if len(nums) > 2 {
		cont = nums[2]
	}
	regime, err := logline.NewRegime(begin, end, cont)
	if err != nil {
		return logline.Regime{}, false
	}
	return regime, true
}

func (a *App) regime() logline.Regime {
	return logline.DefaultRegime()
}

func (a *App) cmdPreprocessDB2(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: preprocess db2 <filename>")
		return nil
	}
	lines, ok := a.readSource(c.Args[0])
	if !ok {
		return nil
	}

	a.trace.Section("preprocess db2")
	sink := diag.NewSink()
	cfg := db2.Config{Enabled: true, Conditional: a.cfg.DB2Conditional, VersionString: a.cfg.DB2VersionString}
	out, stmts, translated := db2.Preprocess(lines, cfg, preproc.NoFetcher{}, sink)
	a.printf("translated=%v statements=%d\n", translated, len(stmts))
	a.dumpReplacedLines(out)
	a.dumpDiagnostics(sink)
	return nil
}

func (a *App) cmdPreprocessCICS(c cmd.Selection) error {
	if len(c.Args) < 1 {
		a.println("Usage: preprocess cics <filename>")
		return nil
	}
	lines, ok := a.readSource(c.Args[0])
	if !ok {
		return nil
	}

	a.trace.Section("preprocess cics")
	sink := diag.NewSink()
	cfg := cics.Config{Enabled: true, Prolog: a.cfg.CICSProlog, Epilog: a.cfg.CICSEpilog, Leasm: a.cfg.CICSLeasm}
	out, stmts := cics.Preprocess(lines, cfg, sink)
	a.printf("statements=%d\n", len(stmts))
	a.dumpReplacedLines(out)
	a.dumpDiagnostics(sink)
	return nil
}

func (a *App) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		a.displayCommands(cmds)
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			a.printf("%v\n", err)
			return nil
		}
		switch {
		case s.Command.Subtree != nil:
			a.displayCommands(s.Command.Subtree)
		default:
			if s.Command.Usage != "" {
				a.printf("Usage: %s\n\n", s.Command.Usage)
			}
			switch {
			case s.Command.Description != "":
				a.printf("Description:\n%s\n\n", indentWrap(3, s.Command.Description))
			case s.Command.Brief != "":
				a.printf("Description:\n%s.\n\n", indentWrap(3, s.Command.Brief))
			}
			if len(s.Command.Shortcuts) > 0 {
				a.printf("Shortcuts: %s\n\n", strings.Join(s.Command.Shortcuts, ", "))
			}
		}
	}
	return nil
}

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, errInvalidBool(s)
	}
}

type errInvalidBool string

func (e errInvalidBool) Error() string { return "invalid bool value '" + string(e) + "'" }
