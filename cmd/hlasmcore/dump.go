// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/beevik/cmd"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/fields"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/asmop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/caexpr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/machineop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/macroop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc"
)

// dumpTokens lexes ll and prints every non-hidden token with its
// source range, one per line.
func (a *App) dumpTokens(ll *logline.Line, processAllowed bool) {
	lx := lexer.New(ll, processAllowed)
	for {
		t := lx.Next()
		if t.Kind == lexer.EOF {
			break
		}
		a.printf("    %-13s %-20q %d:%d-%d:%d\n",
			t.Kind, t.Text,
			t.Range.Start.Line+1, t.Range.Start.Column+1,
			t.Range.End.Line+1, t.Range.End.Column+1)
	}
}

func (a *App) dumpStatement(stmt *fields.Statement) {
	if stmt.Label != nil {
		a.printf("  label:       %q\n", stmt.Label.Text)
	}
	if stmt.Instruction != nil {
		a.printf("  instruction: %q\n", stmt.Instruction.Name)
	}
	if stmt.Operand != nil {
		a.printf("  operand:     %d token(s)\n", len(stmt.Operand.Tokens))
	}
	for _, r := range stmt.Remarks {
		a.printf("  remark[%d]:  %q\n", r.Segment, r.Text)
	}
}

func (a *App) dumpParsed(p fields.ParsedOperand) {
	switch p.Kind {
	case fields.ParsedMacro:
		a.dumpMacroList(p.Macro)
	case fields.ParsedMachine:
		for i, n := range p.Machine.Operands {
			a.printf("  operand[%d]: %s\n", i, dumpMachineNode(n))
		}
	case fields.ParsedAsm:
		a.dumpAsmList(p.Asm)
	case fields.ParsedCA:
		a.printf("  CA expr: %s\n", dumpCANode(p.CA))
	}
}

func (a *App) dumpMacroList(l macroop.List) {
	for i, chain := range l.Operands {
		a.printf("  operand[%d]: %s\n", i, dumpChain(chain))
	}
}

func dumpChain(chain macroop.Chain) string {
	var parts []string
	for _, c := range chain {
		switch c.Kind {
		case macroop.CharStrConc:
			parts = append(parts, fmt.Sprintf("str(%q)", c.Text))
		case macroop.VarSymConc:
			parts = append(parts, fmt.Sprintf("var(&%s)", c.Name))
		case macroop.DotConc:
			parts = append(parts, "dot")
		case macroop.EqualsConc:
			parts = append(parts, "equals")
		case macroop.SublistConc:
			var items []string
			for _, sub := range c.Items {
				items = append(items, dumpChain(sub))
			}
			parts = append(parts, "sublist("+strings.Join(items, ", ")+")")
		}
	}
	return strings.Join(parts, " ")
}

func (a *App) dumpAsmList(l asmop.List) {
	for i, op := range l.Operands {
		switch op.Kind {
		case asmop.OperandChain:
			a.printf("  operand[%d]: chain %s\n", i, dumpChain(op.Chain))
		case asmop.OperandExpr:
			a.printf("  operand[%d]: expr %s\n", i, dumpMachineNode(op.Expr))
		case asmop.OperandDataDef:
			a.printf("  operand[%d]: data_def type=%c\n", i, op.DataDef.Type)
		}
	}
}

func dumpMachineNode(n *machineop.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case machineop.NodeBinary:
		return fmt.Sprintf("(%s %c %s)", dumpMachineNode(n.Left), n.Op, dumpMachineNode(n.Right))
	case machineop.NodeUnary:
		return fmt.Sprintf("(%c%s)", n.Op, dumpMachineNode(n.Left))
	case machineop.NodeParen:
		return "(" + dumpMachineNode(n.Left) + ")"
	case machineop.NodeLocationCounter:
		return "*"
	case machineop.NodeNumber:
		return n.Text
	case machineop.NodeLiteral:
		return "=" + n.Text
	case machineop.NodeAttrRef:
		return fmt.Sprintf("%c'%s", n.AttrLetter, dumpMachineNode(n.Left))
	case machineop.NodeTypedString:
		return n.Text
	case machineop.NodeQualifiedID:
		if n.Qualifier != "" {
			return n.Text + "." + n.Qualifier
		}
		return n.Text
	case machineop.NodeAddress:
		return fmt.Sprintf("%s(%s)", dumpMachineNode(n.Left), dumpMachineNode(n.Right))
	default:
		return "?"
	}
}

func dumpCANode(n *caexpr.Node) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case caexpr.NodeBinary:
		return fmt.Sprintf("(%s %c %s)", dumpCANode(n.Left), n.Op, dumpCANode(n.Right))
	case caexpr.NodeUnary:
		return fmt.Sprintf("(%c%s)", n.Op, dumpCANode(n.Left))
	case caexpr.NodeParen:
		var items []string
		for _, c := range n.Children {
			items = append(items, dumpCANode(c))
		}
		return "(" + strings.Join(items, ", ") + ")"
	case caexpr.NodeVarSym:
		return "&" + n.Name
	case caexpr.NodeNumber:
		return n.Text
	case caexpr.NodeString:
		return "'" + n.Text + "'"
	case caexpr.NodeAttrRef:
		return fmt.Sprintf("%c'%s", n.AttrLetter, dumpCANode(n.Left))
	case caexpr.NodeFuncCall:
		var args []string
		for _, c := range n.Children {
			args = append(args, dumpCANode(c))
		}
		return n.Name + "(" + strings.Join(args, ", ") + ")"
	case caexpr.NodeSymbol:
		return n.Name
	default:
		return "?"
	}
}

func (a *App) dumpDiagnostics(sink *diag.Sink) {
	for _, d := range sink.Diagnostics() {
		a.println(a.colorizeDiag(d))
	}
}

// colorizeDiag renders a diagnostic, wrapped in an ANSI severity
// color only when a.colorize (stdout is a terminal) is set.
func (a *App) colorizeDiag(d diag.Diagnostic) string {
	s := d.String()
	if !a.colorize {
		return s
	}
	code := "33" // yellow, warning
	if d.Severity == diag.SeverityError {
		code = "31" // red, error
	}
	return fmt.Sprintf("\x1b[%sm%s\x1b[0m", code, s)
}

func (a *App) dumpReplacedLines(lines []preproc.ReplacedLine) {
	for _, l := range lines {
		a.printf("  %5d: %s\n", l.OriginalLine+1, l.Text)
	}
}

func (a *App) printInstruction(inst *instr.Instruction) {
	a.printf("%-8s class=%-10s arch=%v min=%d max=%d",
		inst.Name, inst.Class, inst.Arch, inst.Format.Min, inst.Format.Max)
	if inst.Base != nil {
		a.printf(" base=%s", inst.Base.Name)
		for _, b := range inst.Binds {
			a.printf(" bind[%d]=%s", b.OperandIndex, b.FixedValue)
		}
	}
	a.println()
}

func (a *App) displayCommands(tree *cmd.Tree) {
	a.printf("%s commands:\n", tree.Title)
	for _, c := range tree.Commands {
		if c.Brief != "" {
			a.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
	a.println()
}

// indentWrap wraps s to fit an 80-column terminal with the given left
// indent.
func indentWrap(indent int, s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := strings.Repeat(" ", indent) + words[0]
	width := indent + len(words[0])
	for _, w := range words[1:] {
		if width+1+len(w) > 80 {
			lines = append(lines, line)
			line = strings.Repeat(" ", indent) + w
			width = indent + len(w)
			continue
		}
		line += " " + w
		width += 1 + len(w)
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
