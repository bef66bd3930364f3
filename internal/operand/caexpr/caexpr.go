// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package caexpr implements the conditional-assembly expression
// grammar: a recursive descent sharing machineop's precedence shape
// but over the CA term forms — variable references, A/B/C-typed
// literals, substring notation, attribute references and function
// calls — plus the blank-separated relational and boolean operator
// forms. The parser builds the tree only; evaluation, including
// A-type overflow checking, belongs to a separate evaluator this
// package never implements.
package caexpr

import (
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand"
)

// Kind is the expected outer expression kind a CA instruction
// declares for its operand (SETA/SETB/SETC/AIF/AGO/...).
type Kind int

// Expression kinds.
const (
	KindA Kind = iota // arithmetic
	KindB             // boolean
	KindC             // character
)

// relationalFuncs and booleanFuncs are the function-binary operator
// names; both the prefix form EQ(a,b) and the infix form a EQ b are
// represented as ordinary NodeFuncCall nodes with two arguments,
// resolved against the outer expression kind by a later typed
// resolution pass, never here.
var relationalFuncs = map[string]bool{
	"EQ": true, "NE": true, "LE": true, "LT": true, "GE": true, "GT": true,
}
var booleanFuncs = map[string]bool{
	"AND": true, "OR": true, "XOR": true,
}

// NodeKind identifies the shape of one CA-expression AST node.
type NodeKind int

const (
	NodeBinary NodeKind = iota
	NodeUnary  // unary '+'/'-', or a NOT chain (Op == 'N')
	NodeParen
	NodeVarSym
	NodeNumber    // A-type constant
	NodeString    // C-type quoted string, optionally with a substring suffix
	NodeAttrRef   // attr "'" (variable | literal | symbol)
	NodeFuncCall  // function-name '(' expr_list ')', including relational/boolean operators
	NodeSymbol
)

// Node is one CA-expression AST node.
type Node struct {
	Kind       NodeKind
	Op         byte // '+','-','*','/','.' for NodeBinary; 'N' marks a NOT in NodeUnary
	Left       *Node
	Right      *Node
	Children   []*Node // NodeFuncCall arguments, and NodeParen's expr_list (set only when it holds more than one element)
	Name       string  // NodeVarSym/NodeSymbol/NodeFuncCall name
	Text       string  // NodeNumber/NodeString literal text
	AttrLetter byte
	Substring  [2]*Node // NodeString's optional (start, length) substring args; Substring[1] nil means '*'
	HasSub     bool
	Range      diag.Range

	// ResolvedKind is filled in by the typed resolution pass (not this
	// parser) once the caller's expected Kind is known.
	ResolvedKind *Kind
}

// Parse parses one CA expr and returns the remaining unconsumed tokens.
func Parse(toks []lexer.Token, sink *diag.Sink) (*Node, []lexer.Token) {
	n, cur := parseLogical(operand.NewCursor(toks), sink)
	return n, cur.Remaining()
}

// parseLogical parses expr optionally chained by blank-separated
// relational (EQ NE LE LT GE GT) and boolean (AND OR XOR) operators,
// building left-associative function-binary nodes. An ordinary symbol
// in operator position that is not one of those names ends the chain
// rather than consuming it, so an expr_list's space-separated elements
// stay separate.
func parseLogical(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	left, cur := parseExpr(cur, sink)
	for left != nil {
		save := cur
		if cur.Peek(0).Kind == lexer.SPACE {
			cur = cur.Advance(1)
		}
		op := cur.Peek(0)
		if op.Kind != lexer.ORDSYMBOL {
			cur = save
			break
		}
		name := strings.ToUpper(op.Text)
		if !relationalFuncs[name] && !booleanFuncs[name] {
			cur = save
			break
		}
		cur = cur.Advance(1)
		if cur.Peek(0).Kind == lexer.SPACE {
			cur = cur.Advance(1)
		}
		var right *Node
		right, cur = parseExpr(cur, sink)
		if right == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, cur.ErrorRange(), "expected operand after %s", name)
			break
		}
		left = &Node{Kind: NodeFuncCall, Name: name, Children: []*Node{left, right}, Range: diag.Range{Start: left.Range.Start, End: right.Range.End}}
	}
	return left, cur
}

// expr := expr_s (('+'|'-'|'.') expr_s)*
func parseExpr(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	left, cur := parseExprS(cur, sink)
	for left != nil {
		op := cur.Peek(0)
		if op.Kind != lexer.PLUS && op.Kind != lexer.MINUS && op.Kind != lexer.DOT {
			break
		}
		var right *Node
		right, cur = parseExprS(cur.Advance(1), sink)
		if right == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, cur.ErrorRange(), "expected operand after '%s'", string(opByte(op.Kind)))
			break
		}
		left = &Node{Kind: NodeBinary, Op: opByte(op.Kind), Left: left, Right: right, Range: diag.Range{Start: left.Range.Start, End: right.Range.End}}
	}
	return left, cur
}

// expr_s := term_c (('*'|'/') term_c)*
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
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, cur.ErrorRange(), "expected operand after '%s'", string(opByte(op.Kind)))
			break
		}
		left = &Node{Kind: NodeBinary, Op: opByte(op.Kind), Left: left, Right: right, Range: diag.Range{Start: left.Range.Start, End: right.Range.End}}
	}
	return left, cur
}

// term_c := ('+'|'-') term_c | term
func parseTermC(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	tok := cur.Peek(0)
	if tok.Kind == lexer.PLUS || tok.Kind == lexer.MINUS {
		child, next := parseTermC(cur.Advance(1), sink)
		if child == nil {
			sink.Addf(diag.CodeUnexpectedEOF, diag.SeverityError, next.ErrorRange(), "expected operand after unary '%s'", string(opByte(tok.Kind)))
			return nil, next
		}
		return &Node{Kind: NodeUnary, Op: opByte(tok.Kind), Left: child, Range: diag.Range{Start: tok.Range.Start, End: child.Range.End}}, next
	}
	if isNotKeyword(cur) {
		// NOT is recognized only when immediately followed by a blank;
		// the peek is exactly one SPACE token deep.
		notTok := cur.Peek(0)
		child, next := parseTermC(cur.Advance(2), sink)
		if child == nil {
			sink.Addf(diag.CodeCAExprBadOperand, diag.SeverityError, next.ErrorRange(), "expected operand after NOT")
			return nil, next
		}
		return &Node{Kind: NodeUnary, Op: 'N', Left: child, Range: diag.Range{Start: notTok.Range.Start, End: child.Range.End}}, next
	}
	return parseTerm(cur, sink)
}

// isNotKeyword reports whether the cursor sits on an ordinary symbol
// "NOT" immediately followed by whitespace represented in the token
// stream (a SPACE token, which L3 does not filter out of the hidden
// channel the way it filters CONTINUATION/IGNORED).
func isNotKeyword(cur operand.Cursor) bool {
	t := cur.Peek(0)
	if t.Kind != lexer.ORDSYMBOL || !strings.EqualFold(t.Text, "NOT") {
		return false
	}
	return cur.Peek(1).Kind == lexer.SPACE
}

func parseTerm(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	tok := cur.Peek(0)
	switch {
	case tok.Kind == lexer.AMPERSAND:
		return parseVarSym(cur)

	case tok.Kind == lexer.NUM:
		return &Node{Kind: NodeNumber, Text: tok.Text, Range: tok.Range}, cur.Advance(1)

	case tok.Kind == lexer.APOSTROPHE:
		return parseStringWithSubstring(cur, sink)

	case tok.Kind == lexer.LPAR:
		return parseParenOrExprList(cur, sink)

	case tok.Kind == lexer.ORDSYMBOL && cur.Peek(1).Kind == lexer.ATTR:
		return parseAttrRef(cur, sink)

	case tok.Kind == lexer.ORDSYMBOL && cur.Peek(1).Kind == lexer.LPAR:
		return parseFuncCall(cur, sink)

	case tok.Kind == lexer.ORDSYMBOL:
		return &Node{Kind: NodeSymbol, Name: tok.Text, Range: tok.Range}, cur.Advance(1)

	default:
		sink.Addf(diag.CodeUnexpectedToken, diag.SeverityError, cur.ErrorRange(), "unexpected token in CA expression")
		return nil, cur
	}
}

func parseVarSym(cur operand.Cursor) (*Node, operand.Cursor) {
	start := cur.Peek(0)
	cur = cur.Advance(1)
	end := start
	name := ""
	if tok, next, ok := cur.Accept(lexer.ORDSYMBOL); ok {
		name = tok.Text
		end = tok
		cur = next
	}
	return &Node{Kind: NodeVarSym, Name: name, Range: diag.Range{Start: start.Range.Start, End: end.Range.End}}, cur
}

// parseStringWithSubstring parses "'" string "'" optionally followed
// by '(' expr ',' (expr|'*') ')'.
func parseStringWithSubstring(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	open := cur.Peek(0)
	cur = cur.Advance(1)
	var b strings.Builder
	end := open
	closed := false
	for !cur.AtEnd() {
		t := cur.Peek(0)
		cur = cur.Advance(1)
		end = t
		if t.Kind == lexer.APOSTROPHE {
			closed = true
			break
		}
		b.WriteString(t.Text)
	}
	if !closed {
		sink.Addf(diag.CodeUnterminatedString, diag.SeverityError, diag.Range{Start: open.Range.Start, End: end.Range.End}, "unterminated string")
	}
	node := &Node{Kind: NodeString, Text: b.String(), Range: diag.Range{Start: open.Range.Start, End: end.Range.End}}
	if cur.Peek(0).Kind == lexer.LPAR {
		var startExpr, lenExpr *Node
		cur = cur.Advance(1)
		startExpr, cur = parseExpr(cur, sink)
		if _, next, ok := cur.Accept(lexer.COMMA); ok {
			cur = next
			if cur.Peek(0).Kind == lexer.ASTERISK {
				cur = cur.Advance(1)
			} else {
				lenExpr, cur = parseExpr(cur, sink)
			}
		} else {
			sink.Addf(diag.CodeCAExprBadSubstring, diag.SeverityError, cur.ErrorRange(), "malformed substring notation")
		}
		closeTok, next, ok := cur.Accept(lexer.RPAR)
		if !ok {
			sink.Addf(diag.CodeUnmatchedLeftParen, diag.SeverityError, cur.ErrorRange(), "missing ')' in substring notation")
		} else {
			cur = next
			node.Range.End = closeTok.Range.End
		}
		node.HasSub = true
		node.Substring[0] = startExpr
		node.Substring[1] = lenExpr
	}
	return node, cur
}

// parseParenOrExprList parses '(' expr_list ')' where expr_list is a
// NOT-or-space-separated sequence of expressions; a single-element
// list collapses to a plain NodeParen.
func parseParenOrExprList(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	open := cur.Peek(0)
	cur = cur.Advance(1)
	var items []*Node
	for {
		var n *Node
		n, cur = parseLogical(cur, sink)
		if n != nil {
			items = append(items, n)
		}
		if cur.Peek(0).Kind == lexer.RPAR || cur.AtEnd() {
			break
		}
		if _, next, ok := cur.Accept(lexer.COMMA); ok {
			cur = next
			continue
		}
		if cur.Peek(0).Kind == lexer.SPACE {
			// expr_list is space- or NOT-separated; a SPACE token (or
			// the next ordinary symbol being NOT, handled by
			// parseTermC's own lookahead) separates successive
			// expressions rather than terminating the list.
			cur = cur.Advance(1)
			continue
		}
		break
	}
	closeTok, next, ok := cur.Accept(lexer.RPAR)
	end := cur.ErrorRange().End
	if ok {
		cur = next
		end = closeTok.Range.End
	} else {
		sink.Addf(diag.CodeUnmatchedLeftParen, diag.SeverityError, cur.ErrorRange(), "missing ')'")
	}
	if len(items) == 1 {
		return &Node{Kind: NodeParen, Left: items[0], Range: diag.Range{Start: open.Range.Start, End: end}}, cur
	}
	return &Node{Kind: NodeParen, Children: items, Range: diag.Range{Start: open.Range.Start, End: end}}, cur
}

// parseAttrRef parses `attr "'" (variable | literal | symbol)`.
func parseAttrRef(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	letterTok := cur.Peek(0)
	cur = cur.Advance(2) // letter + ATTR
	var letter byte
	if len(letterTok.Text) == 1 {
		letter = letterTok.Text[0]
	}
	var operandNode *Node
	switch cur.Peek(0).Kind {
	case lexer.AMPERSAND:
		operandNode, cur = parseVarSym(cur)
	case lexer.APOSTROPHE:
		operandNode, cur = parseStringWithSubstring(cur, sink)
	case lexer.ORDSYMBOL:
		tok := cur.Peek(0)
		operandNode = &Node{Kind: NodeSymbol, Name: tok.Text, Range: tok.Range}
		cur = cur.Advance(1)
	default:
		sink.Addf(diag.CodeCAExprBadAttr, diag.SeverityError, cur.ErrorRange(), "bad attribute reference operand")
	}
	end := letterTok.Range.End
	if operandNode != nil {
		end = operandNode.Range.End
	}
	return &Node{Kind: NodeAttrRef, AttrLetter: letter, Left: operandNode, Range: diag.Range{Start: letterTok.Range.Start, End: end}}, cur
}

// parseFuncCall parses `function-name '(' expr_list ')'`, which also
// covers the prefix relational (EQ/NE/LE/LT/GE/GT) and boolean
// (AND/OR/XOR) operator forms: both are represented as ordinary
// NodeFuncCall nodes here and distinguished later by the typed
// resolution pass.
func parseFuncCall(cur operand.Cursor, sink *diag.Sink) (*Node, operand.Cursor) {
	nameTok := cur.Peek(0)
	cur = cur.Advance(1)
	open := cur.Peek(0)
	cur = cur.Advance(1)
	var args []*Node
	for {
		if cur.Peek(0).Kind == lexer.RPAR || cur.AtEnd() {
			break
		}
		var n *Node
		n, cur = parseExpr(cur, sink)
		if n != nil {
			args = append(args, n)
		}
		if _, next, ok := cur.Accept(lexer.COMMA); ok {
			cur = next
			continue
		}
		break
	}
	closeTok, next, ok := cur.Accept(lexer.RPAR)
	end := open.Range.End
	if ok {
		cur = next
		end = closeTok.Range.End
	} else {
		sink.Addf(diag.CodeUnmatchedLeftParen, diag.SeverityError, cur.ErrorRange(), "missing ')' in function call")
	}
	// A name outside the builtin operator tables is still a
	// well-formed call node; user-defined function names are resolved
	// outside this parser.
	name := strings.ToUpper(nameTok.Text)
	return &Node{Kind: NodeFuncCall, Name: name, Children: args, Range: diag.Range{Start: nameTok.Range.Start, End: end}}, cur
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
	case lexer.DOT:
		return '.'
	default:
		return 0
	}
}

// Resolve annotates n and its subtree with kind as the outer
// expression kind. It issues a type-mismatch diagnostic when a node's
// shape is incompatible with kind (a string node under KindA, for
// instance) but never evaluates the expression.
func Resolve(n *Node, kind Kind, sink *diag.Sink) {
	if n == nil {
		return
	}
	k := kind
	n.ResolvedKind = &k
	switch n.Kind {
	case NodeNumber:
		// A B-type context accepts 0/1 numeric operands, so only a
		// C-type context makes a bare number a mismatch.
		if kind == KindC {
			sink.Addf(diag.CodeCAExprTypeMismatch, diag.SeverityError, n.Range, "numeric operand not valid in this expression context")
		}
	case NodeString:
		if kind != KindC {
			// In a B-type context a string is a comparison operand
			// (T'&V EQ 'O' and similar), not itself a type error; the
			// mismatch only applies outside B and C contexts.
			if kind != KindB {
				sink.Addf(diag.CodeCAExprTypeMismatch, diag.SeverityError, n.Range, "string operand not valid in this expression context")
			}
		}
	case NodeFuncCall:
		if relationalFuncs[n.Name] {
			// Comparison operands are A- or C-typed values regardless
			// of the outer kind.
			for _, c := range n.Children {
				childKind := KindA
				if c != nil && (c.Kind == NodeString || c.Kind == NodeAttrRef) {
					childKind = KindC
				}
				Resolve(c, childKind, sink)
			}
			return
		}
		if booleanFuncs[n.Name] {
			for _, c := range n.Children {
				Resolve(c, KindB, sink)
			}
			return
		}
		for _, c := range n.Children {
			Resolve(c, kind, sink)
		}
	case NodeBinary, NodeUnary:
		Resolve(n.Left, kind, sink)
		Resolve(n.Right, kind, sink)
	case NodeParen:
		Resolve(n.Left, kind, sink)
		for _, c := range n.Children {
			Resolve(c, kind, sink)
		}
	case NodeAttrRef:
		// attribute references always yield a fixed kind depending on
		// the attribute letter; T'/O' are character, L'/S'/I'/K'/N'/D'
		// are numeric. This parser does not track that table, so no
		// mismatch is raised here (left to the evaluator).
	}
}
