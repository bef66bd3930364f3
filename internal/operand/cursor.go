// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package operand holds the token-cursor combinators shared by the
// five operand grammars (macroop, machineop, dataop, asmop, caexpr),
// which operate over already-lexed tokens rather than directly over
// source text.
package operand

import (
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
)

// Cursor is a read-only position within a token slice. A Cursor value
// is immutable: advancing it returns a new Cursor rather than
// mutating the receiver, so a sub-parser can save and restore a
// position for speculative lookahead.
type Cursor struct {
	toks []lexer.Token
	pos  int
}

// NewCursor returns a Cursor positioned at the start of toks.
func NewCursor(toks []lexer.Token) Cursor {
	return Cursor{toks: toks}
}

// AtEnd reports whether the cursor has consumed every token.
func (c Cursor) AtEnd() bool { return c.pos >= len(c.toks) }

// Peek returns the token `offset` positions ahead without consuming
// it. Peeking past the end yields a zero-value EOF-like token.
func (c Cursor) Peek(offset int) lexer.Token {
	i := c.pos + offset
	if i < 0 || i >= len(c.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return c.toks[i]
}

// Advance returns a Cursor positioned n tokens ahead.
func (c Cursor) Advance(n int) Cursor {
	return Cursor{toks: c.toks, pos: c.pos + n}
}

// Remaining returns every token not yet consumed.
func (c Cursor) Remaining() []lexer.Token { return c.toks[c.pos:] }

// Accept consumes and returns the current token if its kind is k.
func (c Cursor) Accept(k lexer.Kind) (lexer.Token, Cursor, bool) {
	t := c.Peek(0)
	if t.Kind != k {
		return lexer.Token{}, c, false
	}
	return t, c.Advance(1), true
}

// ErrorRange returns the range to attach to a diagnostic anchored at
// the cursor's current position: the current token's range, or the
// end of the previous token when the cursor has run out of input.
func (c Cursor) ErrorRange() diag.Range {
	if !c.AtEnd() {
		return c.Peek(0).Range
	}
	if c.pos > 0 && c.pos-1 < len(c.toks) {
		return diag.Range{Start: c.toks[c.pos-1].Range.End, End: c.toks[c.pos-1].Range.End}
	}
	return diag.Range{}
}
