// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asmop implements the assembler-operand grammar: an operand
// list shaped like macroop's concatenation-chain model, but with
// machine expressions recognized in the well-known argument positions
// of DC/DS/USING/DROP/EQU/ORG/CCW/CNOP and arity checked against the
// instruction's catalog entry.
package asmop

import (
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/dataop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/machineop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/macroop"
)

// exprMnemonics is the static set of assembler mnemonics whose
// operand positions hold machine expressions rather than opaque
// concatenation-chain text.
var exprMnemonics = map[string]bool{
	"USING": true, "DROP": true, "EQU": true, "ORG": true,
	"CCW": true, "CNOP": true,
}

// OperandKind tags which shape one parsed operand ended up taking.
type OperandKind int

const (
	OperandChain   OperandKind = iota // macroop.Chain, for mnemonics outside exprMnemonics/DC/DS
	OperandExpr                       // *machineop.Node
	OperandDataDef                    // *dataop.DataDef, for DC/DS
)

// Operand is one parsed assembler-statement operand.
type Operand struct {
	Kind    OperandKind
	Chain   macroop.Chain
	Expr    *machineop.Node
	DataDef *dataop.DataDef
	Range   diag.Range
}

// List is the full parsed operand list of one assembler statement.
type List struct {
	Operands []Operand
}

// Parse parses toks as the operand list of the assembler instruction
// named mnemonic (already upper-cased by the caller, per field-splitter
// convention), checking arity against inst's catalog entry if non-nil.
// goff is forwarded to dataop.Parse for DC/DS operands.
func Parse(mnemonic string, inst *instr.Instruction, toks []lexer.Token, goff bool, sink *diag.Sink) List {
	groups := splitTopLevel(toks)
	var list List
	isDataDef := mnemonic == "DC" || mnemonic == "DS"
	useExpr := exprMnemonics[mnemonic]
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		r := diag.Range{Start: g[0].Range.Start, End: g[len(g)-1].Range.End}
		switch {
		case isDataDef:
			dd, _ := dataop.Parse(g, goff, sink)
			list.Operands = append(list.Operands, Operand{Kind: OperandDataDef, DataDef: dd, Range: r})
		case useExpr:
			n, _ := machineop.Parse(g, sink)
			list.Operands = append(list.Operands, Operand{Kind: OperandExpr, Expr: n, Range: r})
		default:
			chain := macroop.Parse(g, sink)
			var c macroop.Chain
			if len(chain.Operands) > 0 {
				c = chain.Operands[0]
			}
			list.Operands = append(list.Operands, Operand{Kind: OperandChain, Chain: c, Range: r})
		}
	}

	if inst != nil {
		checkArity(mnemonic, inst, len(list.Operands), sink, toks)
	}
	return list
}

// checkArity enforces inst.Format.Min/Max, with Max == -1 meaning
// unbounded.
func checkArity(mnemonic string, inst *instr.Instruction, n int, sink *diag.Sink, toks []lexer.Token) {
	min, max := inst.Format.Min, inst.Format.Max
	if n < min {
		sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, errRange(toks), "%s requires at least %d operand(s), got %d", mnemonic, min, n)
		return
	}
	if max >= 0 && n > max {
		sink.Addf(diag.CodeUnexpectedToken, diag.SeverityError, errRange(toks), "%s accepts at most %d operand(s), got %d", mnemonic, max, n)
	}
}

func errRange(toks []lexer.Token) diag.Range {
	if len(toks) == 0 {
		return diag.Range{}
	}
	return diag.Range{Start: toks[0].Range.Start, End: toks[len(toks)-1].Range.End}
}

// splitTopLevel splits toks on COMMA tokens at paren depth 0, the
// same combinator macroop and dataop each define locally; duplicated
// rather than exported so each grammar's splitting can evolve
// independently.
func splitTopLevel(toks []lexer.Token) [][]lexer.Token {
	var groups [][]lexer.Token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.Kind {
		case lexer.LPAR:
			depth++
		case lexer.RPAR:
			if depth > 0 {
				depth--
			}
		case lexer.COMMA:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, toks[start:])
	return groups
}
