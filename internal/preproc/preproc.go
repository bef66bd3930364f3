// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package preproc holds the types shared by the two source-to-source
// rewriters (internal/preproc/db2, internal/preproc/cics): the
// replaced-line and preprocessor-statement shapes, the field-range
// helpers both rewriters use to anchor recognized statements back to
// the original document, and the library-fetcher collaborator
// interface used for INCLUDE resolution.
package preproc

import (
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
)

// ReplacedLine is one line of a preprocessor's rewritten document. It
// always carries the original line number it came from (or, for a
// line a preprocessor injected wholesale, the line number of the
// statement that triggered the injection), so downstream range
// reporting remains anchored to the original document.
type ReplacedLine struct {
	Text         string
	OriginalLine int
}

// Statement is the structured description of one recognized
// preprocessor statement: its field ranges, for IDE highlighting,
// plus whether it was an INCLUDE form.
type Statement struct {
	LabelRange       diag.Range
	InstructionRange diag.Range
	OperandRanges    []diag.Range
	RemarkRanges     []diag.Range
	StmtRange        diag.Range
	IsInclude        bool
}

// LibraryFetcher resolves an INCLUDE member name to its text and
// originating location, synchronously. A fetcher that wants async
// semantics must present a blocking facade.
type LibraryFetcher interface {
	Fetch(memberName string) (text string, line int, ok bool)
}

// NoFetcher is a LibraryFetcher that never resolves any member, for
// callers that have no library to consult.
type NoFetcher struct{}

// Fetch always reports ok=false.
func (NoFetcher) Fetch(memberName string) (string, int, bool) { return "", 0, false }

// FieldIndexRange is a half-open byte-offset span within a
// preprocessor rewriter's flattened logical-line text (the same
// string its recognition regexp matched against via
// FindStringSubmatchIndex), used to anchor a recognized statement's
// label, instruction, operand, and remark ranges back to the original
// document.
type FieldIndexRange struct {
	Start, End int
}

// TextRange maps r to an original-document range, the same way
// db2.extractHostVars maps a host-variable span: the rune at r.Start
// anchors Start, the rune at r.End-1 anchors End. It assumes text's
// byte offsets and ll.Text()'s rune offsets coincide, which holds for
// the ASCII keyword/label/punctuation anchors every preprocessor
// statement range is computed from. An empty or out-of-bounds r
// yields the zero Range, signaling "field not present" to callers.
func TextRange(ll *logline.Line, r FieldIndexRange) diag.Range {
	if r.End <= r.Start || r.Start < 0 {
		return diag.Range{}
	}
	positions := ll.Positions()
	if r.End > len(positions) {
		return diag.Range{}
	}
	s := positions[r.Start]
	e := positions[r.End-1]
	return diag.Range{
		Start: ll.CodePosition(s.Segment, s.Column),
		End:   ll.CodePosition(e.Segment, e.Column+1),
	}
}

// WordRanges splits the text spanned by r on runs of blanks and
// returns one range per non-blank word, for a preprocessor statement
// whose operand field is a blank-separated word list (CICS's EXEC
// CICS keyword options) rather than DB2's single free-form SQL body.
func WordRanges(ll *logline.Line, text string, r FieldIndexRange) []diag.Range {
	var ranges []diag.Range
	i := r.Start
	for i < r.End {
		for i < r.End && isBlankByte(text[i]) {
			i++
		}
		if i >= r.End {
			break
		}
		j := i
		for j < r.End && !isBlankByte(text[j]) {
			j++
		}
		ranges = append(ranges, TextRange(ll, FieldIndexRange{i, j}))
		i = j
	}
	return ranges
}

// TrailingRemarkRanges returns the range of whatever non-blank text
// remains in [r.Start, r.End) as a single-element RemarkRanges slice,
// or nil if that span is entirely blank. Both preprocessors' recognized
// grammars consume their statement's text to end of line as operand
// body, so this is ordinarily nil; it exists so a recognizer whose
// grammar does leave trailing remark text needs no further rewrite.
func TrailingRemarkRanges(ll *logline.Line, text string, r FieldIndexRange) []diag.Range {
	lo, hi := -1, -1
	for i := r.Start; i < r.End && i < len(text); i++ {
		if !isBlankByte(text[i]) {
			if lo == -1 {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo == -1 {
		return nil
	}
	return []diag.Range{TextRange(ll, FieldIndexRange{lo, hi})}
}

func isBlankByte(b byte) bool { return b == ' ' || b == '\t' }

// SegmentLogicalLines groups a stream of already-decoded physical
// lines into logical lines per regime, the same continuation-joining
// logline.Assembler performs for the main L1/L2 pipeline. Both
// preprocessors need this because a recognized EXEC SQL/EXEC CICS
// statement may itself span several physical lines under standard
// ICTL continuation, and the rewriter must preserve that continuation
// geometry rather than operate one physical line at a time.
func SegmentLogicalLines(lines []charstream.Line, startLineNumber int, regime logline.Regime) []*logline.Line {
	var out []*logline.Line
	i := 0
	lineNo := startLineNumber
	for i < len(lines) {
		a := logline.NewAssembler(regime)
		continued := a.Append(lines[i], lineNo)
		i++
		lineNo++
		for continued && i < len(lines) {
			continued = a.Append(lines[i], lineNo)
			i++
			lineNo++
		}
		out = append(out, a.Finish())
	}
	return out
}
