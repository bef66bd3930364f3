// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataop implements the data-definition grammar (the operand
// shape of DC/DS). It shares machineop's expression grammar for every
// numeric sub-field: duplication factor, P/L/S/E modifiers, and the
// address-form nominal.
package dataop

import (
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/machineop"
)

// typeExtWhitelist is the static (type, ext) whitelist deciding which
// second letters extend which type letters.
var typeExtWhitelist = map[byte]map[byte]bool{
	'A': {0: true, 'D': true},
	'C': {0: true, 'A': true, 'E': true},
	'R': {0: true, 'D': true},
	'V': {0: true, 'L': true},
	'S': {0: true, 'Y': true},
	'F': {0: true},
	'H': {0: true},
	'D': {0: true},
	'E': {0: true},
	'B': {0: true},
	'X': {0: true},
	'Y': {0: true},
	'P': {0: true},
	'Z': {0: true},
	'G': {0: true, 'F': true},
}

// Nominal is a data_def's optional nominal value: either a quoted
// string body or an address-form expression list.
type Nominal struct {
	IsString  bool
	String    string
	Addresses []*machineop.Node
	Range     diag.Range
}

// DataDef is one parsed data_def.
type DataDef struct {
	DuplFactor   *machineop.Node
	Type         byte
	Ext          byte // 0 if absent
	P, S, E      *machineop.Node
	L            *machineop.Node
	LengthIsBits bool
	Nominal      *Nominal
	Range        diag.Range
}

// Parse parses one data_def from toks. goff selects GOFF mode, which
// changes how an unextended 'R' type is recorded: lower-case 'r'
// outside GOFF mode, to preserve legacy semantics.
func Parse(toks []lexer.Token, goff bool, sink *diag.Sink) (*DataDef, []lexer.Token) {
	cur := operand.NewCursor(toks)
	dd := &DataDef{}
	start := cur.Peek(0)

	if cur.Peek(0).Kind == lexer.NUM {
		dd.DuplFactor = &machineop.Node{Kind: machineop.NodeNumber, Text: cur.Peek(0).Text, Range: cur.Peek(0).Range}
		cur = cur.Advance(1)
	} else if cur.Peek(0).Kind == lexer.LPAR {
		var n *machineop.Node
		n, cur = parseParenExpr(cur, sink)
		dd.DuplFactor = n
	}

	typeTok, ok := consumeOrdsymbol(&cur)
	if !ok {
		sink.Addf(diag.CodeDataDefBadType, diag.SeverityError, cur.ErrorRange(), "expected a type letter")
		return dd, cur.Remaining()
	}
	text := typeTok.Text
	rest := text
	dd.Type = rest[0]
	rest = rest[1:]
	if len(rest) > 0 {
		ext := rest[0]
		if typeExtWhitelist[dd.Type][ext] {
			dd.Ext = ext
			rest = rest[1:]
		} else if !typeExtWhitelist[dd.Type][0] {
			sink.Addf(diag.CodeDataDefBadType, diag.SeverityError, typeTok.Range, "unsupported type/extension combination %q", text)
		}
	}
	if dd.Type == 'R' && !goff && dd.Ext == 0 {
		dd.Type = 'r'
	}

	// Any P/L/S/E modifier digits embedded directly in the same token
	// (the common "FL4" form, since no lexical boundary separates a
	// letter from trailing digits). A modifier letter that ends the token
	// takes its value from the tokens that follow ("FL.4", "FP(3)").
	pending := byte(0)
	for len(rest) > 0 {
		letter := rest[0]
		j := 1
		for j < len(rest) && isDigit(rest[j]) {
			j++
		}
		if j == 1 {
			if len(rest) == 1 && strings.IndexByte("PLSE", letter) >= 0 {
				pending = letter
				break
			}
			sink.Addf(diag.CodeDataDefBadNumeric, diag.SeverityError, typeTok.Range, "malformed modifier in %q", text)
			break
		}
		num := &machineop.Node{Kind: machineop.NodeNumber, Text: rest[1:j], Range: typeTok.Range}
		assignModifier(dd, letter, num, sink, typeTok.Range)
		rest = rest[j:]
	}

	// Modifiers whose value is given as separate tokens: "P(expr)",
	// "L.4", "S-1", either for the pending letter that ended the type
	// token or for a one-letter token.
	for {
		letter, r := pending, typeTok.Range
		if letter == 0 {
			t := cur.Peek(0)
			if t.Kind != lexer.ORDSYMBOL || len(t.Text) != 1 {
				break
			}
			letter, r = t.Text[0], t.Range
			if letter != 'P' && letter != 'L' && letter != 'S' && letter != 'E' {
				break
			}
			cur = cur.Advance(1)
		}
		pending = 0
		bits := false
		if letter == 'L' && cur.Peek(0).Kind == lexer.DOT {
			bits = true
			cur = cur.Advance(1)
		}
		var n *machineop.Node
		var remain []lexer.Token
		n, remain = machineop.Parse(cur.Remaining(), sink)
		cur = operand.NewCursor(remain)
		if letter == 'L' {
			dd.LengthIsBits = bits
		}
		assignModifier(dd, letter, n, sink, r)
	}

	if cur.Peek(0).Kind == lexer.APOSTROPHE {
		dd.Nominal, cur = parseStringNominal(cur)
	} else if cur.Peek(0).Kind == lexer.LPAR {
		dd.Nominal, cur = parseAddressNominal(cur, sink)
	}

	end := typeTok.Range.End
	if dd.Nominal != nil {
		end = dd.Nominal.Range.End
	}
	dd.Range = diag.Range{Start: start.Range.Start, End: end}
	return dd, cur.Remaining()
}

func assignModifier(dd *DataDef, letter byte, n *machineop.Node, sink *diag.Sink, r diag.Range) {
	switch letter {
	case 'P':
		dd.P = n
	case 'L':
		dd.L = n
	case 'S':
		dd.S = n
	case 'E':
		dd.E = n
	default:
		sink.Addf(diag.CodeDataDefBadNumeric, diag.SeverityError, r, "unknown modifier %q", string(letter))
	}
}

func consumeOrdsymbol(cur *operand.Cursor) (lexer.Token, bool) {
	t, next, ok := cur.Accept(lexer.ORDSYMBOL)
	if ok {
		*cur = next
	}
	return t, ok
}

func parseParenExpr(cur operand.Cursor, sink *diag.Sink) (*machineop.Node, operand.Cursor) {
	n, remain := machineop.Parse(cur.Remaining(), sink)
	return n, operand.NewCursor(remain)
}

func parseStringNominal(cur operand.Cursor) (*Nominal, operand.Cursor) {
	open := cur.Peek(0)
	cur = cur.Advance(1)
	var b strings.Builder
	end := open
	for !cur.AtEnd() {
		t := cur.Peek(0)
		cur = cur.Advance(1)
		end = t
		if t.Kind == lexer.APOSTROPHE {
			break
		}
		b.WriteString(t.Text)
	}
	return &Nominal{IsString: true, String: b.String(), Range: diag.Range{Start: open.Range.Start, End: end.Range.End}}, cur
}

func parseAddressNominal(cur operand.Cursor, sink *diag.Sink) (*Nominal, operand.Cursor) {
	open := cur.Peek(0)
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
	nom := &Nominal{Range: open.Range}
	for _, group := range splitTopLevel(inner) {
		n, _ := machineop.Parse(group, sink)
		if n != nil {
			nom.Addresses = append(nom.Addresses, n)
		}
	}
	cur = cur.Advance(i)
	if i > 0 {
		nom.Range.End = cur.Peek(-1).Range.End
	}
	return nom, cur
}

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

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
