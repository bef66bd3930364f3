package caexpr

import (
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/lexer"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
)

func lexAll(t *testing.T, text string) []lexer.Token {
	t.Helper()
	a := logline.NewAssembler(logline.DefaultRegime())
	a.Append(charstream.DecodeLine([]byte(text), charstream.EOLLF), 0)
	line := a.Finish()
	lx := lexer.New(line, false)
	var toks []lexer.Token
	for {
		tok := lx.Next()
		if tok.Kind == lexer.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestParenthesizedArithmetic(t *testing.T) {
	// (1+2)*3 must parse as a top-level '*' whose left child is a
	// NodeParen wrapping a single '+' expression.
	toks := lexAll(t, "(1+2)*3")
	n, remain := Parse(toks, diag.NewSink())
	if len(remain) != 0 {
		t.Fatalf("unexpected remaining tokens: %v", remain)
	}
	if n.Kind != NodeBinary || n.Op != '*' {
		t.Fatalf("expected top-level '*', got %+v", n)
	}
	if n.Left.Kind != NodeParen || n.Left.Left.Kind != NodeBinary || n.Left.Left.Op != '+' {
		t.Fatalf("unexpected left child: %+v", n.Left)
	}
}

func TestResolveAcceptsAType(t *testing.T) {
	toks := lexAll(t, "(1+2)*3")
	n, _ := Parse(toks, diag.NewSink())
	sink := diag.NewSink()
	Resolve(n, KindA, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics for A-type expression: %v", sink.Diagnostics())
	}
}

func TestResolveRejectsStringUnderAType(t *testing.T) {
	toks := lexAll(t, "'X'")
	n, _ := Parse(toks, diag.NewSink())
	sink := diag.NewSink()
	Resolve(n, KindA, sink)
	if !sink.HasErrors() {
		t.Fatal("expected a type-mismatch diagnostic for a string under KindA")
	}
}

func TestVariableSymbol(t *testing.T) {
	toks := lexAll(t, "&VAR")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeVarSym || n.Name != "VAR" {
		t.Fatalf("unexpected var-sym node: %+v", n)
	}
}

func TestNotOperator(t *testing.T) {
	toks := lexAll(t, "NOT &B")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeUnary || n.Op != 'N' {
		t.Fatalf("expected NOT unary node, got %+v", n)
	}
	if n.Left.Kind != NodeVarSym || n.Left.Name != "B" {
		t.Fatalf("unexpected NOT operand: %+v", n.Left)
	}
}

func TestRelationalFunctionCall(t *testing.T) {
	toks := lexAll(t, "EQ(&A,&B)")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeFuncCall || n.Name != "EQ" || len(n.Children) != 2 {
		t.Fatalf("unexpected function call node: %+v", n)
	}
}

func TestInfixRelationalOperator(t *testing.T) {
	toks := lexAll(t, "&A EQ 1")
	n, remain := Parse(toks, diag.NewSink())
	if len(remain) != 0 {
		t.Fatalf("unexpected remaining tokens: %v", remain)
	}
	if n.Kind != NodeFuncCall || n.Name != "EQ" || len(n.Children) != 2 {
		t.Fatalf("expected an EQ function-binary node, got %+v", n)
	}
	if n.Children[0].Kind != NodeVarSym || n.Children[1].Kind != NodeNumber {
		t.Fatalf("unexpected comparison operands: %+v", n.Children)
	}
}

func TestAttrStringComparisonUnderBType(t *testing.T) {
	// T'&VAR EQ 'O' in a B-type context treats 'O' as a string
	// operand of the comparison, with no type-mismatch diagnostic.
	toks := lexAll(t, "T'&VAR EQ 'O'")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeFuncCall || n.Name != "EQ" {
		t.Fatalf("expected an EQ comparison, got %+v", n)
	}
	if n.Children[0].Kind != NodeAttrRef || n.Children[1].Kind != NodeString {
		t.Fatalf("unexpected comparison operands: %+v", n.Children)
	}
	sink := diag.NewSink()
	Resolve(n, KindB, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestResolveAcceptsNumberUnderBType(t *testing.T) {
	toks := lexAll(t, "(1)")
	n, _ := Parse(toks, diag.NewSink())
	sink := diag.NewSink()
	Resolve(n, KindB, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestSubstringNotation(t *testing.T) {
	toks := lexAll(t, "'ABC'(1,2)")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeString || !n.HasSub {
		t.Fatalf("expected string with substring, got %+v", n)
	}
	if n.Substring[0] == nil || n.Substring[0].Text != "1" {
		t.Fatalf("unexpected substring start: %+v", n.Substring[0])
	}
	if n.Substring[1] == nil || n.Substring[1].Text != "2" {
		t.Fatalf("unexpected substring length: %+v", n.Substring[1])
	}
}

func TestAttributeReference(t *testing.T) {
	toks := lexAll(t, "T'&VAR")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeAttrRef || n.AttrLetter != 'T' {
		t.Fatalf("unexpected attr ref node: %+v", n)
	}
	if n.Left == nil || n.Left.Kind != NodeVarSym || n.Left.Name != "VAR" {
		t.Fatalf("unexpected attr ref operand: %+v", n.Left)
	}
}
