// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package macroop implements the macro-operand concatenation-chain
// grammar: each operand of a comma-separated list is a chain of
// concatenation points — literal text, variable-symbol references,
// dot and equals separators, and parenthesized sublists.
package macroop

import (
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand"
)

// ConcKind identifies the shape of one concatenation point.
type ConcKind int

const (
	CharStrConc ConcKind = iota
	VarSymConc
	DotConc
	EqualsConc
	SublistConc
)

// Conc is one concatenation point within an operand's chain.
type Conc struct {
	Kind  ConcKind
	Text  string     // CharStrConc: literal text (quotes, if any, included verbatim)
	Name  string      // VarSymConc: the variable's ordinary-symbol name
	Subs  []Chain     // VarSymConc: subscript list, e.g. &ARR(1,&I)
	Items []Chain     // SublistConc: the parenthesized operand list
	Range diag.Range
}

// Chain is one operand's concatenation chain.
type Chain []Conc

// List is a comma-separated list of operand chains.
type List struct {
	Operands []Chain
}

// Parse splits toks into a comma-separated operand list and parses
// each operand into a concatenation chain.
func Parse(toks []lexer.Token, sink *diag.Sink) List {
	var list List
	for _, group := range splitTopLevel(toks) {
		list.Operands = append(list.Operands, parseChain(operand.NewCursor(group), sink))
	}
	return list
}

// splitTopLevel splits toks on COMMA tokens at paren depth 0.
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

func parseChain(cur operand.Cursor, sink *diag.Sink) Chain {
	var chain Chain
	for !cur.AtEnd() {
		tok := cur.Peek(0)
		switch tok.Kind {
		case lexer.AMPERSAND:
			var c Conc
			c, cur = parseVarSym(cur, sink)
			chain = append(chain, c)
		case lexer.DOT:
			chain = append(chain, Conc{Kind: DotConc, Range: tok.Range})
			cur = cur.Advance(1)
		case lexer.EQUALS:
			chain = append(chain, Conc{Kind: EqualsConc, Range: tok.Range})
			cur = cur.Advance(1)
		case lexer.APOSTROPHE, lexer.ATTR:
			var c Conc
			c, cur = parseQuoted(cur)
			chain = append(chain, c)
		case lexer.LPAR:
			var c Conc
			c, cur = parseSublist(cur, sink)
			chain = append(chain, c)
		default:
			var c Conc
			c, cur = parseCharRun(cur)
			chain = append(chain, c)
		}
	}
	return mergeAdjacentCharStr(chain)
}

// parseVarSym parses "&NAME" or "&NAME(sub,sub,...)".
func parseVarSym(cur operand.Cursor, sink *diag.Sink) (Conc, operand.Cursor) {
	start := cur.Peek(0)
	cur = cur.Advance(1) // consume '&'
	name := ""
	nameEnd := start
	if tok, next, ok := cur.Accept(lexer.ORDSYMBOL); ok {
		name = tok.Text
		nameEnd = tok
		cur = next
	}
	c := Conc{Kind: VarSymConc, Name: name, Range: diag.Range{Start: start.Range.Start, End: nameEnd.Range.End}}
	if cur.Peek(0).Kind == lexer.LPAR {
		depth := 0
		i := 0
		for {
			t := cur.Peek(i)
			if t.Kind == lexer.EOF {
				break
			}
			if t.Kind == lexer.LPAR {
				depth++
			}
			if t.Kind == lexer.RPAR {
				depth--
				if depth == 0 {
					i++
					break
				}
			}
			i++
		}
		inner := cur.Advance(1).Remaining()
		// inner currently spans to end of the whole remainder; trim to
		// the matched group (i tokens total, minus the leading '(' and
		// trailing ')').
		if i >= 2 {
			inner = inner[:i-2]
		} else {
			inner = nil
		}
		for _, g := range splitTopLevel(inner) {
			c.Subs = append(c.Subs, parseChain(operand.NewCursor(g), sink))
		}
		cur = cur.Advance(i)
		c.Range.End = cur.Peek(-1).Range.End
	}
	return c, cur
}

// parseQuoted consumes a quoted string starting at the current
// APOSTROPHE/ATTR token through its matching closing APOSTROPHE,
// treating the whole span (including an attribute letter, if any,
// immediately before the opening quote) as one CharStrConc. Embedded
// doubled quotes ('' inside the string) are left as two adjacent
// APOSTROPHE tokens; a consumer materializing the string's character
// value collapses them from the preserved token span.
func parseQuoted(cur operand.Cursor) (Conc, operand.Cursor) {
	start := cur.Peek(0)
	var b strings.Builder
	b.WriteString(start.Text)
	cur = cur.Advance(1)
	end := start
	for !cur.AtEnd() {
		t := cur.Peek(0)
		b.WriteString(t.Text)
		cur = cur.Advance(1)
		end = t
		if t.Kind == lexer.APOSTROPHE {
			break
		}
	}
	return Conc{Kind: CharStrConc, Text: b.String(), Range: diag.Range{Start: start.Range.Start, End: end.Range.End}}, cur
}

func parseSublist(cur operand.Cursor, sink *diag.Sink) (Conc, operand.Cursor) {
	start := cur.Peek(0)
	depth := 0
	i := 0
	for {
		t := cur.Peek(i)
		if t.Kind == lexer.EOF {
			break
		}
		if t.Kind == lexer.LPAR {
			depth++
		}
		if t.Kind == lexer.RPAR {
			depth--
			if depth == 0 {
				i++
				break
			}
		}
		i++
	}
	inner := cur.Advance(1).Remaining()
	if i >= 2 {
		inner = inner[:i-2]
	} else {
		inner = nil
	}
	c := Conc{Kind: SublistConc, Range: start.Range}
	for _, g := range splitTopLevel(inner) {
		c.Items = append(c.Items, parseChain(operand.NewCursor(g), sink))
	}
	cur = cur.Advance(i)
	if i > 0 {
		c.Range.End = cur.Peek(-1).Range.End
	}
	return c, cur
}

// parseCharRun consumes a run of tokens that are none of the
// dedicated concatenation-point kinds, joining their text verbatim.
func parseCharRun(cur operand.Cursor) (Conc, operand.Cursor) {
	start := cur.Peek(0)
	var b strings.Builder
	end := start
	for !cur.AtEnd() {
		t := cur.Peek(0)
		switch t.Kind {
		case lexer.AMPERSAND, lexer.DOT, lexer.EQUALS, lexer.APOSTROPHE, lexer.ATTR, lexer.LPAR, lexer.RPAR:
			return Conc{Kind: CharStrConc, Text: b.String(), Range: diag.Range{Start: start.Range.Start, End: end.Range.End}}, cur
		}
		b.WriteString(t.Text)
		end = t
		cur = cur.Advance(1)
	}
	return Conc{Kind: CharStrConc, Text: b.String(), Range: diag.Range{Start: start.Range.Start, End: end.Range.End}}, cur
}

// mergeAdjacentCharStr removes empty char_str_conc nodes and merges
// adjacent ones.
func mergeAdjacentCharStr(chain Chain) Chain {
	var out Chain
	for _, c := range chain {
		if c.Kind == CharStrConc && c.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == CharStrConc && c.Kind == CharStrConc {
			out[n-1].Text += c.Text
			out[n-1].Range.End = c.Range.End
			continue
		}
		out = append(out, c)
	}
	return out
}
