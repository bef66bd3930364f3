// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logline implements the logical-line assembler: it groups
// physical lines into one logical line per the ICTL column regime,
// slicing each physical line by column into its code, continuation
// and ignore regions, and flags continuation errors instead of
// reporting them inline.
package logline

import "github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"

// Line is a logical line: the ordered segments contributed by one or
// more physical lines joined by continuation.
type Line struct {
	Regime               Regime
	Segments             []Segment
	AnyContinuationError bool
	AnySOSIContinuation  bool
	MissingNextLine      bool
}

// Assembler incrementally builds a Line by consuming physical lines
// one at a time via Append, then finalizing with Finish.
type Assembler struct {
	regime   Regime
	segments []Segment
}

// NewAssembler returns an Assembler configured for the given column
// regime.
func NewAssembler(regime Regime) *Assembler {
	return &Assembler{regime: regime}
}

// Append appends one physical segment built from a decoded charstream
// line. It reports continued=true if the segment's continuation
// column requests another physical line to follow.
func (a *Assembler) Append(line charstream.Line, lineNumber int) (continued bool) {
	codeStart, contStart, ignoreStart := a.regime.boundaries()
	n := len(line.Runes)

	seg := Segment{
		raw:         line.Runes,
		codeStart:   codeStart,
		contStart:   contStart,
		ignoreStart: ignoreStart,
		end:         minInt(n, identificationEnd),
		EOL:         line.EOL,
		LineNumber:  lineNumber,
	}

	if a.regime.ContinuationDisabled() {
		a.segments = append(a.segments, seg)
		return false
	}

	contCol := rune(0)
	hasContCol := contStart < n
	if hasContCol {
		contCol = line.Runes[contStart]
	}

	if !hasContCol || isBlank(contCol) {
		a.segments = append(a.segments, seg)
		return false
	}

	// A non-blank continuation column requests another physical line.
	seg.requestsContinue = true

	if a.regime.DBCS {
		// Extend the continuation region leftwards across trailing
		// identical non-blank characters, modeling a DBCS shift-out/
		// shift-in pair that straddled the continuation column.
		extendTo := contStart
		for extendTo > codeStart && line.Runes[extendTo-1] == contCol {
			extendTo--
		}
		if extendTo < contStart {
			seg.contStart = extendTo
			if extendTo > codeStart {
				leading := line.Runes[extendTo-1]
				if leading == '<' || leading == '>' {
					seg.SOSIContinuation = true
				}
			}
		}
	}

	a.segments = append(a.segments, seg)
	return true
}

// Finish validates continuation indentation across all appended
// segments and returns the completed Line.
func (a *Assembler) Finish() *Line {
	continueCol := a.regime.Continue

	l := &Line{Regime: a.regime, Segments: a.segments}

	for i := range l.Segments {
		seg := &l.Segments[i]
		if i > 0 && continueCol > 0 {
			// The first continue-1 code columns of a continuation
			// segment must be blank.
			code := seg.Code()
			limit := continueCol - 1
			if limit > len(code) {
				limit = len(code)
			}
			for j := 0; j < limit; j++ {
				if !isBlank(code[j]) {
					seg.ContinuationError = true
					break
				}
			}
		}
		if seg.ContinuationError {
			l.AnyContinuationError = true
		}
		if seg.SOSIContinuation {
			l.AnySOSIContinuation = true
		}
	}

	if n := len(l.Segments); n > 0 && l.Segments[n-1].requestsContinue {
		l.MissingNextLine = true
	}

	return l
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
