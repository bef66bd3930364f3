// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reparse implements L8: the statement field re-parser the
// macro engine calls once a model statement's operand text has been
// variable-substituted. It re-lexes the substituted text into a fresh
// logical line and reuses the field splitter and operand dispatch
// exactly as the main pipeline does, then remaps every resulting
// diagnostic's range back to the model statement's original source
// coordinates via a sorted anchor table searched by nearest-preceding
// match.
package reparse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/fields"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
)

// Anchor maps one position within the re-lexed substituted text — as
// L1/L2 number it, a zero-based physical-line index and a UTF-16
// column within that line — back to the corresponding position in the
// model statement's original source. The macro engine supplies one
// anchor per splice point where substitution began or resumed
// unmodified text; everything between two anchors shares the nearer
// preceding anchor's line and advances its column by the same delta.
type Anchor struct {
	Local    diag.Position
	Original diag.Position
}

// Provider remaps substituted-text positions back to original-document
// positions via a sorted anchor table. The zero Provider has no
// anchors and passes positions through unchanged, for reparse calls
// that have nothing to remap (e.g. a caller already working in
// original-document coordinates).
type Provider struct {
	anchors []Anchor
}

// NewProvider builds a Provider from anchors. anchors need not arrive
// sorted; NewProvider copies and sorts them by local position once.
func NewProvider(anchors []Anchor) Provider {
	a := append([]Anchor(nil), anchors...)
	sort.Slice(a, func(i, j int) bool { return localLess(a[i].Local, a[j].Local) })
	return Provider{anchors: a}
}

func localLess(a, b diag.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Position maps one substituted-text position back to the original
// document, via the nearest anchor at or before local.
func (p Provider) Position(local diag.Position) diag.Position {
	if len(p.anchors) == 0 {
		return local
	}
	i := sort.Search(len(p.anchors), func(i int) bool { return localLess(local, p.anchors[i].Local) })
	if i == 0 {
		return p.anchors[0].Original
	}
	a := p.anchors[i-1]
	col := a.Original.Column
	if local.Line == a.Local.Line {
		col += local.Column - a.Local.Column
	}
	return diag.Position{Line: a.Original.Line, Column: col}
}

// Range maps a substituted-text range to an original-document range.
func (p Provider) Range(r diag.Range) diag.Range {
	return diag.Range{Start: p.Position(r.Start), End: p.Position(r.End)}
}

// Context tracks how many times a surrounding macro expansion has
// invoked Reparse. The macro engine owns one Context per expansion
// and reads Iterations for its own metrics; reparse never caps or
// rejects based on the count.
type Context struct {
	Iterations int
}

// Result is one re-parsed model statement.
type Result struct {
	Statement *fields.Statement
	Parsed    fields.ParsedOperand
}

// Reparse builds a fresh logical line from text (already variable-
// substituted, possibly spanning several physical lines if the
// substitution introduced newlines), splits it into fields the way L5
// does for an ordinary statement, and dispatches its operand field to
// whichever L6 sub-parser inst's class selects. Every diagnostic
// produced is remapped from substituted-text coordinates to original-
// document coordinates via provider before being added to sink; when
// text has no embedded line break, each such diagnostic's message is
// decorated with the substituted text itself.
func (c *Context) Reparse(text string, provider Provider, inst *instr.Instruction, goff bool, sink *diag.Sink) Result {
	c.Iterations++

	ll := buildLogicalLine(text)
	local := diag.NewSink()
	stmt := fields.Split(ll, false, local)
	parsed := fields.Dispatch(stmt, inst, goff, local)

	singleLine := !strings.ContainsAny(text, "\n\r")
	for _, d := range local.Diagnostics() {
		d.Range = provider.Range(d.Range)
		if singleLine {
			d.Message = fmt.Sprintf("%s (substituted text: %q)", d.Message, text)
		}
		sink.Add(d)
	}

	return Result{Statement: stmt, Parsed: parsed}
}

// buildLogicalLine decodes text's physical lines and assembles them
// into a single logical line, unconditionally joining every physical
// line text contains: the macro engine has already decided text is one
// statement's substituted operand text, so continuation-column
// detection (which the main L1/L2 pipeline performs for raw source)
// does not apply here.
func buildLogicalLine(text string) *logline.Line {
	physical, _ := charstream.SplitLines(strings.NewReader(text))
	a := logline.NewAssembler(logline.DefaultRegime())
	for i, p := range physical {
		a.Append(p, i)
	}
	return a.Finish()
}
