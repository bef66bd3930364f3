package logline

import "github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"

// Segment is one physical line's contribution to a logical line,
// exposing the begin/code/continuation/ignore slices as half-open
// rune ranges over the raw physical line.
type Segment struct {
	raw []rune

	codeStart   int // start of the code...continuation slice
	contStart   int // start of the continuation...ignore slice
	ignoreStart int // start of the ignore...end slice
	end         int // end of the ignore...end slice (<= len(raw))

	EOL charstream.EOLKind

	// LineNumber is the 0-based original-document line number this
	// segment came from, preserved through preprocessor rewriting so
	// range reporting stays anchored to the original source.
	LineNumber int

	ContinuationError bool
	SOSIContinuation  bool
	requestsContinue  bool // the continuation column held a non-blank
}

// Begin returns the ignored-prefix slice (columns before the code area).
func (s *Segment) Begin() []rune { return s.raw[:clampMin(s.codeStart, len(s.raw))] }

// Code returns the code-area slice.
func (s *Segment) Code() []rune {
	return s.raw[clampMin(s.codeStart, len(s.raw)):clampMin(s.contStart, len(s.raw))]
}

// Continuation returns the (at most one rune) continuation-column slice.
func (s *Segment) Continuation() []rune {
	return s.raw[clampMin(s.contStart, len(s.raw)):clampMin(s.ignoreStart, len(s.raw))]
}

// Ignore returns the identification/ignore-area slice.
func (s *Segment) Ignore() []rune {
	return s.raw[clampMin(s.ignoreStart, len(s.raw)):clampMin(s.end, len(s.raw))]
}

// RequestsContinuation reports whether this segment's continuation
// column held a non-blank character, i.e. whether the logical line
// continues onto the next physical line.
func (s *Segment) RequestsContinuation() bool { return s.requestsContinue }

func clampMin(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }
