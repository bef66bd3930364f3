// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fields implements L5: the field splitter that extracts the
// label, instruction, operand, and remark fields from a logical line,
// choosing the operand sub-parser by the instruction's catalog class.
// The splitter locates the operand field's remark boundary itself:
// the first unquoted,
// unparenthesized blank that is not a continuation segment's leading
// indentation — before any sub-parser ever sees the token slice, so
// none of the five grammars needs to report back how much of the
// field it consumed.
package fields

import (
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/asmop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/caexpr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/machineop"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/macroop"
)

// LabelKind classifies a statement's label field.
type LabelKind int

const (
	LabelNone LabelKind = iota
	LabelOrdinary
	LabelSequence // begins with '.'
	LabelVariable // begins with '&', re-lexed through L3 by its consumer
)

// LabelField is the statement's label, if present.
type LabelField struct {
	Kind  LabelKind
	Text  string
	Range diag.Range
}

// InstructionField is the statement's instruction-field text, looked
// up in the catalog by its consumer to pick an operand grammar.
type InstructionField struct {
	Name  string
	Range diag.Range
}

// OperandField is the statement's operand-field token slice, handed
// unparsed to whichever L6 sub-parser the instruction class selects.
type OperandField struct {
	Tokens []lexer.Token
	Range  diag.Range
}

// RemarkField is whatever text follows the operand field's remark
// terminator on one physical line.
type RemarkField struct {
	Segment int
	Text    string
	Range   diag.Range
}

// Statement is one logical line split into fields.
type Statement struct {
	Label       *LabelField
	Instruction *InstructionField
	Operand     *OperandField
	Remarks     []RemarkField
}

// RangeProvider maps (segment_index, column_in_segment) coordinates
// back to original-document ranges. It is a thin wrapper over
// logline.Line so that operand sub-parsers never need to import
// logline directly.
type RangeProvider struct {
	line *logline.Line
}

// NewRangeProvider wraps line as a RangeProvider.
func NewRangeProvider(line *logline.Line) RangeProvider {
	return RangeProvider{line: line}
}

// Position maps one (segment, column) pair to an original-document position.
func (p RangeProvider) Position(segmentIndex, columnInSegment int) diag.Position {
	return p.line.CodePosition(segmentIndex, columnInSegment)
}

// Range maps a pair of (segment, column) endpoints to an
// original-document range.
func (p RangeProvider) Range(startSeg, startCol, endSeg, endCol int) diag.Range {
	return diag.Range{
		Start: p.Position(startSeg, startCol),
		End:   p.Position(endSeg, endCol),
	}
}

// Split extracts the label, instruction and operand fields from line.
// processAllowed is forwarded to the L3 lexer unchanged (true only for
// the source's first logical line when *PROCESS recognition is
// enabled).
func Split(line *logline.Line, processAllowed bool, sink *diag.Sink) *Statement {
	lx := lexer.New(line, processAllowed)

	var toks []lexer.Token
	for {
		t := lx.Next()
		if t.Kind == lexer.EOF {
			break
		}
		toks = append(toks, t)
	}

	stmt := &Statement{}
	i := 0

	if i < len(toks) && toks[i].Kind == lexer.SPACE {
		// Unlabeled line: the code area begins with a blank.
		i++
	} else if i < len(toks) {
		start := i
		for i < len(toks) && toks[i].Kind != lexer.SPACE {
			i++
		}
		label := joinText(toks[start:i])
		kind := LabelOrdinary
		switch {
		case strings.HasPrefix(label, "."):
			kind = LabelSequence
		case strings.HasPrefix(label, "&"):
			kind = LabelVariable
		}
		stmt.Label = &LabelField{
			Kind:  kind,
			Text:  label,
			Range: diag.Range{Start: toks[start].Range.Start, End: toks[i-1].Range.End},
		}
		if i < len(toks) && toks[i].Kind == lexer.SPACE {
			i++
		}
	}

	if i < len(toks) {
		start := i
		for i < len(toks) && toks[i].Kind != lexer.SPACE {
			i++
		}
		stmt.Instruction = &InstructionField{
			Name:  joinText(toks[start:i]),
			Range: diag.Range{Start: toks[start].Range.Start, End: toks[i-1].Range.End},
		}
		if i < len(toks) && toks[i].Kind == lexer.SPACE {
			i++
		}
	}

	if i < len(toks) {
		operandToks, remarkToks := splitOperandRemarks(toks[i:])
		if len(operandToks) > 0 {
			stmt.Operand = &OperandField{
				Tokens: operandToks,
				Range:  diag.Range{Start: operandToks[0].Range.Start, End: operandToks[len(operandToks)-1].Range.End},
			}
		}
		stmt.Remarks = splitRemarks(line, remarkToks)
	}

	return stmt
}

// splitOperandRemarks separates the tokens after the instruction field
// into the operand field and the per-line remark text. On each
// physical line, the operand portion ends at the first SPACE token
// that is not nested inside a quoted string or parenthesized list;
// whatever follows on that line is remark. A continued statement
// resumes its operand field on the next segment, whose leading
// indentation (lexed as an ordinary SPACE token, since every segment
// shares the same code-area boundary) is skipped rather than treated
// as a remark terminator.
func splitOperandRemarks(toks []lexer.Token) (op, rem []lexer.Token) {
	quoted := false
	depth := 0
	inRemark := false
	for idx, t := range toks {
		if idx > 0 && toks[idx-1].Range.Start.Line != t.Range.Start.Line {
			inRemark = false
			if t.Kind == lexer.SPACE && !quoted && depth == 0 {
				continue
			}
		}
		if inRemark {
			rem = append(rem, t)
			continue
		}
		switch t.Kind {
		case lexer.APOSTROPHE:
			quoted = !quoted
		case lexer.LPAR:
			if !quoted {
				depth++
			}
		case lexer.RPAR:
			if !quoted && depth > 0 {
				depth--
			}
		case lexer.SPACE:
			if !quoted && depth == 0 {
				inRemark = true
				continue
			}
		}
		op = append(op, t)
	}
	return op, rem
}

// splitRemarks groups the remark tokens splitOperandRemarks returns into
// one RemarkField per original physical line they came from, so a
// remark that rides along a continued statement reports one range per
// segment rather than a single range spanning the continuation gap.
func splitRemarks(line *logline.Line, toks []lexer.Token) []RemarkField {
	var remarks []RemarkField
	start := 0
	for i := 1; i <= len(toks); i++ {
		if i < len(toks) && toks[i].Range.Start.Line == toks[start].Range.Start.Line {
			continue
		}
		group := toks[start:i]
		if text := strings.TrimSpace(joinText(group)); text != "" {
			remarks = append(remarks, RemarkField{
				Segment: segmentForLine(line, group[0].Range.Start.Line),
				Text:    text,
				Range:   diag.Range{Start: group[0].Range.Start, End: group[len(group)-1].Range.End},
			})
		}
		start = i
	}
	return remarks
}

// segmentForLine returns the index into line.Segments whose
// LineNumber matches lineNumber, or 0 if none does.
func segmentForLine(line *logline.Line, lineNumber int) int {
	for idx, seg := range line.Segments {
		if seg.LineNumber == lineNumber {
			return idx
		}
	}
	return 0
}

// ParsedKind tags which of the five L6 grammars produced a
// ParsedOperand.
type ParsedKind int

const (
	ParsedNone ParsedKind = iota
	ParsedMacro
	ParsedMachine
	ParsedAsm
	ParsedCA
)

// ParsedOperand is the result of handing a statement's operand field
// to whichever sub-parser the instruction field's catalog class
// selects. Exactly one of the typed fields is populated, per Kind.
type ParsedOperand struct {
	Kind    ParsedKind
	Macro   macroop.List
	Machine machineop.List
	Asm     asmop.List
	CA      *caexpr.Node
}

// caExprInstructions are the CA instructions whose operand is a single
// expression (SETA/SETB/SETC assign the value of one, AIF/AGO branch
// on or name one). The remaining CA class members
// (GBLA/LCLA family, MACRO, MEND, MEXIT, ANOP) take symbol-list or
// empty operands outside this grammar and fall back to the
// concatenation-chain model, the same shape a macro-body symbol list
// uses.
var caExprInstructions = map[string]bool{
	"SETA": true, "SETB": true, "SETC": true, "AIF": true, "AGO": true,
}

// Dispatch hands stmt's operand tokens to the sub-parser inst's class
// selects. inst is nil when the instruction field named an
// unrecognized mnemonic, which Dispatch treats as a macro call whose
// operands follow the concatenation-chain grammar. goff is forwarded
// to the assembler-operand parser for DC/DS.
func Dispatch(stmt *Statement, inst *instr.Instruction, goff bool, sink *diag.Sink) ParsedOperand {
	var toks []lexer.Token
	if stmt.Operand != nil {
		toks = stmt.Operand.Tokens
	}

	if inst == nil {
		return ParsedOperand{Kind: ParsedMacro, Macro: macroop.Parse(toks, sink)}
	}

	switch inst.Class {
	case instr.ClassCA:
		if caExprInstructions[inst.Name] {
			n, _ := caexpr.Parse(toks, sink)
			return ParsedOperand{Kind: ParsedCA, CA: n}
		}
		return ParsedOperand{Kind: ParsedMacro, Macro: macroop.Parse(toks, sink)}
	case instr.ClassAssembler:
		return ParsedOperand{Kind: ParsedAsm, Asm: asmop.Parse(inst.Name, inst, toks, goff, sink)}
	case instr.ClassMachine, instr.ClassMnemonic:
		list := machineop.ParseList(toks, sink)
		if inst.Class == instr.ClassMnemonic {
			list = applyBindings(inst, list)
		}
		return ParsedOperand{Kind: ParsedMachine, Machine: list}
	default:
		return ParsedOperand{Kind: ParsedMacro, Macro: macroop.Parse(toks, sink)}
	}
}

// applyBindings splices a mnemonic's pre-bound operand values into the
// user-supplied operand list at their fixed positions, so downstream
// consumers see the base instruction's full operand list. Bound nodes
// carry a zero Range; they have no source text of their own.
func applyBindings(inst *instr.Instruction, list machineop.List) machineop.List {
	out := append([]*machineop.Node(nil), list.Operands...)
	for _, b := range inst.Binds {
		n := &machineop.Node{Kind: machineop.NodeNumber, Text: b.FixedValue}
		i := b.OperandIndex
		if i < 0 {
			i = 0
		}
		if i > len(out) {
			i = len(out)
		}
		out = append(out[:i], append([]*machineop.Node{n}, out[i:]...)...)
	}
	return machineop.List{Operands: out}
}

func joinText(toks []lexer.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}
