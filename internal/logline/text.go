package logline

import "github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"

// Text returns the concatenation of every segment's code region, the
// same sequence an Iterator visits.
func (l *Line) Text() []rune {
	var out []rune
	for i := range l.Segments {
		out = append(out, l.Segments[i].Code()...)
	}
	return out
}

// FlatPos locates a flat, concatenated code-point index within a
// Line's segment/column coordinate space.
type FlatPos struct {
	Segment int
	Column  int
}

// Positions returns one FlatPos per code point returned by Text, in
// the same order, so a consumer walking the flattened text (such as
// the lexer) can recover (segment_index, column_in_segment) for any
// position without re-deriving segment boundaries.
func (l *Line) Positions() []FlatPos {
	var out []FlatPos
	for i := range l.Segments {
		code := l.Segments[i].Code()
		for c := range code {
			out = append(out, FlatPos{Segment: i, Column: c})
		}
	}
	return out
}

// OriginalPosition maps a (segment_index, raw_column) pair — a
// 0-based column counted from the start of that segment's raw
// physical line, the same convention Segment's region boundaries use
// — back to a diag.Position in the original document, anchoring
// diagnostics and highlighting to original source even after the
// segment's code region has been reinterpreted by a later layer.
func (l *Line) OriginalPosition(segmentIndex, rawColumn int) diag.Position {
	if segmentIndex < 0 {
		segmentIndex = 0
	}
	if segmentIndex >= len(l.Segments) {
		if len(l.Segments) == 0 {
			return diag.Position{}
		}
		segmentIndex = len(l.Segments) - 1
	}
	seg := &l.Segments[segmentIndex]
	return diag.Position{Line: seg.LineNumber, Column: rawColumn}
}

// CodePosition maps a (segment_index, column_in_code_region) pair —
// as produced by an Iterator — to an original-document position.
func (l *Line) CodePosition(segmentIndex, columnInCodeRegion int) diag.Position {
	if segmentIndex < 0 || segmentIndex >= len(l.Segments) {
		return l.OriginalPosition(segmentIndex, columnInCodeRegion)
	}
	return l.OriginalPosition(segmentIndex, l.Segments[segmentIndex].codeStart+columnInCodeRegion)
}

// RangeOf builds a diag.Range spanning two iterator positions on this
// line, mapped back to original-document coordinates.
func (l *Line) RangeOf(start, end Iterator) diag.Range {
	ss, sc := start.Position()
	es, ec := end.Position()
	return diag.Range{
		Start: l.CodePosition(ss, sc),
		End:   l.CodePosition(es, ec),
	}
}
