// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machineop implements the machine-expression grammar: a
// recursive descent over '+'/'-' (lowest) then '*'/'/' then unary
// sign then the term forms (parenthesized expression, location
// counter, number, literal, attribute reference, typed string,
// qualified id), plus the expr(expr) address form.
package machineop

import (
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand"
)

// NodeKind identifies the shape of one machine-expression AST node.
type NodeKind int

const (
	NodeBinary NodeKind = iota
	NodeUnary
	NodeParen
	NodeLocationCounter // '*' as the location counter, not multiply
	NodeNumber
	NodeLiteral       // '=' data_definition; Text holds the unparsed literal body
	NodeAttrRef       // attr "'" (literal | qualified_id)
	NodeTypedString   // type "'" string-body "'"
	NodeQualifiedID
	NodeAddress // mach_expr '(' mach_expr ')', stored as an address_nominal
)

// Node is one machine-expression AST node.
type Node struct {
	Kind       NodeKind
	Op         byte // '+','-','*','/' for NodeBinary/NodeUnary
	Left       *Node
	Right      *Node // NodeBinary's right operand, or NodeAddress's displacement/index expr
	Text       string
	Qualifier  string // qualified_id's optional ('.' ORDSYMBOL) part
	AttrLetter byte
	Range      diag.Range
}

// List is the comma-separated machine-operand list of one statement.
// A nil entry marks an operand that failed to parse; the error
// placeholder keeps later operands at their correct indices.
type List struct {
	Operands []*Node
}

// ParseList parses toks as a comma-separated machine-operand list.
// A malformed operand is diagnosed, recorded as nil, and parsing
// resumes at the next comma.
func ParseList(toks []lexer.Token, sink *diag.Sink) List {
	var list List
	cur := operand.NewCursor(toks)
	for !cur.AtEnd() {
		before := sink.Len()
		var n *Node
		n, cur = parseOperand(cur, sink)
		if n == nil && sink.Len() == before {
			sink.Addf(diag.CodeUnexpectedToken, diag.SeverityError, cur.ErrorRange(), "expected a machine operand")
		}
		list.Operands = append(list.Operands, n)
		for !cur.AtEnd() && cur.Peek(0).Kind != lexer.COMMA {
			cur = cur.Advance(1)
		}
		if _, next, ok := cur.Accept(lexer.COMMA); ok {
			cur = next
			continue
		}
		break
	}
	return list
}

// parseOperand parses one mach_expr, optionally followed by a
// parenthesized address-form suffix.
func parseOperand(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	n, cur := parseExpr(cur, sink)
	if n == nil {
		return nil, cur
	}
	if cur.Peek(0).Kind == lexer.LPAR {
		var addr *Node
		addr, cur = parseParen(cur, sink)
		n = &Node{Kind: NodeAddress, Left: n, Right: addr.Left, Range: diag.Range{Start: n.Range.Start, End: addr.Range.End}}
	}
	return n, cur
}

// Parse parses one mach_expr, optionally followed by a parenthesized
// address-form suffix, and returns the remaining unconsumed tokens.
func Parse(toks []lexer.Token, sink *diag.Sink) (*Node, []lexer.Token) {
	n, cur := parseOperand(operand.NewCursor(toks), sink)
	return n, cur.Remaining()
}

// mach_expr := mach_expr_s (('+'|'-') mach_expr_s)*
func parseExpr(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	left, cur := parseExprS(cur, sink)
	for left != nil {
		op := cur.Peek(0)
		if op.Kind != lexer.PLUS && op.Kind != lexer.MINUS {
			break
		}
		var right *Node
		right, cur = parseExprS(cur.Advance(1), sink)
		if right == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, cur.ErrorRange(), "expected operand after '%s'", opSymbol(op.Kind))
			break
		}
		left = &Node{Kind: NodeBinary, Op: opByte(op.Kind), Left: left, Right: right, Range: diag.Range{Start: left.Range.Start, End: right.Range.End}}
	}
	return left, cur
}

// mach_expr_s := mach_term_c (('*'|'/') mach_term_c)*
func parseExprS(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	left, cur := parseTermC(cur, sink)
	for left != nil {
		op := cur.Peek(0)
		if op.Kind != lexer.ASTERISK && op.Kind != lexer.SLASH {
			break
		}
		var right *Node
		right, cur = parseTermC(cur.Advance(1), sink)
		if right == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, cur.ErrorRange(), "expected operand after '%s'", opSymbol(op.Kind))
			break
		}
		left = &Node{Kind: NodeBinary, Op: opByte(op.Kind), Left: left, Right: right, Range: diag.Range{Start: left.Range.Start, End: right.Range.End}}
	}
	return left, cur
}

// mach_term_c := ('+'|'-') mach_term_c | mach_term
func parseTermC(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	tok := cur.Peek(0)
	if tok.Kind == lexer.PLUS || tok.Kind == lexer.MINUS {
		child, next := parseTermC(cur.Advance(1), sink)
		if child == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, next.ErrorRange(), "expected operand after unary '%s'", opSymbol(tok.Kind))
			return nil, next
		}
		return &Node{Kind: NodeUnary, Op: opByte(tok.Kind), Left: child, Range: diag.Range{Start: tok.Range.Start, End: child.Range.End}}, next
	}
	return parseTerm(cur, sink)
}

func parseTerm(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	tok := cur.Peek(0)
	switch {
	case tok.Kind == lexer.LPAR:
		inner, next := parseExpr(cur.Advance(1), sink)
		close, next2, ok := next.Accept(lexer.RPAR)
		if !ok {
			sink.Addf(diag.CodeUnmatchedLeftParen, diag.SeverityError, next.ErrorRange(), "missing ')'")
			return &Node{Kind: NodeParen, Left: inner, Range: tok.Range}, next
		}
		return &Node{Kind: NodeParen, Left: inner, Range: diag.Range{Start: tok.Range.Start, End: close.Range.End}}, next2

	case tok.Kind == lexer.ASTERISK:
		return &Node{Kind: NodeLocationCounter, Range: tok.Range}, cur.Advance(1)

	case tok.Kind == lexer.NUM:
		return &Node{Kind: NodeNumber, Text: tok.Text, Range: tok.Range}, cur.Advance(1)

	case tok.Kind == lexer.EQUALS:
		return parseLiteral(cur, sink)

	case tok.Kind == lexer.ORDSYMBOL && cur.Peek(1).Kind == lexer.ATTR:
		letterTok := tok
		rest := cur.Advance(2)
		var operandNode *Node
		operandNode, rest = parseQualifiedOrLiteral(rest, sink)
		end := letterTok.Range.End
		if operandNode != nil {
			end = operandNode.Range.End
		}
		var letter byte
		if len(letterTok.Text) == 1 {
			letter = letterTok.Text[0]
		}
		return &Node{Kind: NodeAttrRef, AttrLetter: letter, Left: operandNode, Range: diag.Range{Start: letterTok.Range.Start, End: end}}, rest

	case tok.Kind == lexer.ORDSYMBOL && cur.Peek(1).Kind == lexer.APOSTROPHE:
		return parseTypedString(cur, sink)

	case tok.Kind == lexer.ORDSYMBOL:
		name := tok
		rest := cur.Advance(1)
		node := &Node{Kind: NodeQualifiedID, Text: name.Text, Range: name.Range}
		if rest.Peek(0).Kind == lexer.DOT && rest.Peek(1).Kind == lexer.ORDSYMBOL {
			qual := rest.Peek(1)
			node.Qualifier = qual.Text
			node.Range.End = qual.Range.End
			rest = rest.Advance(2)
		}
		return node, rest

	default:
		sink.Addf(diag.CodeUnexpectedToken, diag.SeverityError, cur.ErrorRange(), "unexpected token in machine expression")
		return nil, cur
	}
}

// parseQualifiedOrLiteral parses the operand of an attribute reference:
// either a qualified_id or a nested literal.
func parseQualifiedOrLiteral(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	if cur.Peek(0).Kind == lexer.EQUALS {
		return parseLiteral(cur, sink)
	}
	if cur.Peek(0).Kind == lexer.ASTERISK {
		// L'* denotes the current instruction's length; callers
		// outside a machine-operand context must reject this.
		return &Node{Kind: NodeLocationCounter, Range: cur.Peek(0).Range}, cur.Advance(1)
	}
	if cur.Peek(0).Kind != lexer.ORDSYMBOL {
		return nil, cur
	}
	name := cur.Peek(0)
	rest := cur.Advance(1)
	node := &Node{Kind: NodeQualifiedID, Text: name.Text, Range: name.Range}
	if rest.Peek(0).Kind == lexer.DOT && rest.Peek(1).Kind == lexer.ORDSYMBOL {
		qual := rest.Peek(1)
		node.Qualifier = qual.Text
		node.Range.End = qual.Range.End
		rest = rest.Advance(2)
	}
	return node, rest
}

// parseTypedString parses `type "'" string-body "'"`, where type is
// the ORDSYMBOL immediately before the opening apostrophe (B, X, C,
// CA, and similar extended forms).
func parseTypedString(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	typeTok := cur.Peek(0)
	quote := cur.Peek(1)
	rest := cur.Advance(2)
	var b strings.Builder
	end := quote
	closed := false
	for !rest.AtEnd() {
		t := rest.Peek(0)
		rest = rest.Advance(1)
		end = t
		if t.Kind == lexer.APOSTROPHE {
			closed = true
			break
		}
		b.WriteString(t.Text)
	}
	if !closed {
		sink.Addf(diag.CodeUnterminatedString, diag.SeverityError, diag.Range{Start: quote.Range.Start, End: end.Range.End}, "unterminated string")
	}
	return &Node{Kind: NodeTypedString, Text: b.String(), AttrLetter: firstByte(typeTok.Text), Range: diag.Range{Start: typeTok.Range.Start, End: end.Range.End}}, rest
}

// parseLiteral parses '=' data_definition. The nested data_definition
// grammar lives in package dataop; to avoid a dataop<->machineop
// import cycle (dataop's nominal address form recurses back into a
// machine expression), the literal body is captured here as raw text
// rather than a nested dataop.DataDef. A caller that needs the fully
// parsed literal re-runs dataop.Parse over the same token span.
func parseLiteral(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	eq := cur.Peek(0)
	rest := cur.Advance(1)
	var b strings.Builder
	end := eq
	for !rest.AtEnd() {
		t := rest.Peek(0)
		if t.Kind == lexer.COMMA {
			break
		}
		b.WriteString(t.Text)
		end = t
		rest = rest.Advance(1)
		if t.Kind == lexer.APOSTROPHE {
			// consume through the matching closing quote verbatim
			for !rest.AtEnd() {
				q := rest.Peek(0)
				b.WriteString(q.Text)
				end = q
				rest = rest.Advance(1)
				if q.Kind == lexer.APOSTROPHE {
					break
				}
			}
		}
	}
	return &Node{Kind: NodeLiteral, Text: b.String(), Range: diag.Range{Start: eq.Range.Start, End: end.Range.End}}, rest
}

func parseParen(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	open := cur.Peek(0)
	inner, rest := parseExpr(cur.Advance(1), sink)
	close, rest2, ok := rest.Accept(lexer.RPAR)
	if !ok {
		sink.Addf(diag.CodeUnmatchedLeftParen, diag.SeverityError, rest.ErrorRange(), "missing ')'")
		return &Node{Kind: NodeParen, Left: inner, Range: open.Range}, rest
	}
	return &Node{Kind: NodeParen, Left: inner, Range: diag.Range{Start: open.Range.Start, End: close.Range.End}}, rest2
}

func opByte(k lexer.Kind) byte {
	switch k {
	case lexer.PLUS:
		return '+'
	case lexer.MINUS:
		return '-'
	case lexer.ASTERISK:
		return '*'
	case lexer.SLASH:
		return '/'
	default:
		return 0
	}
}

func opSymbol(k lexer.Kind) string { return string(opByte(k)) }

func firstByte(s string) byte {
	if len(s) == 0 {
		return 0
	}
	return s[0]
}
