package machineop

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

func TestPrecedence(t *testing.T) {
	// 1+2*3 must parse as 1+(2*3): a '+' node whose right child is a '*' node.
	toks := lexAll(t, "1+2*3")
	n, remain := Parse(toks, diag.NewSink())
	if len(remain) != 0 {
		t.Fatalf("unexpected remaining tokens: %v", remain)
	}
	if n.Kind != NodeBinary || n.Op != '+' {
		t.Fatalf("expected top-level '+', got %+v", n)
	}
	if n.Right.Kind != NodeBinary || n.Right.Op != '*' {
		t.Fatalf("expected right child '*', got %+v", n.Right)
	}
}

func TestAddressForm(t *testing.T) {
	toks := lexAll(t, "4(R1)")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeAddress {
		t.Fatalf("expected address_nominal, got %+v", n)
	}
	if n.Left.Kind != NodeNumber || n.Left.Text != "4" {
		t.Fatalf("unexpected displacement: %+v", n.Left)
	}
	if n.Right.Kind != NodeQualifiedID || n.Right.Text != "R1" {
		t.Fatalf("unexpected base register: %+v", n.Right)
	}
}

func TestQualifiedID(t *testing.T) {
	toks := lexAll(t, "A.B")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeQualifiedID || n.Text != "A" || n.Qualifier != "B" {
		t.Fatalf("unexpected qualified id: %+v", n)
	}
}

func TestLocationCounter(t *testing.T) {
	toks := lexAll(t, "*+4")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeBinary || n.Op != '+' || n.Left.Kind != NodeLocationCounter {
		t.Fatalf("unexpected location-counter expression: %+v", n)
	}
}

func TestAttributeReference(t *testing.T) {
	toks := lexAll(t, "L'FIELD")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeAttrRef || n.AttrLetter != 'L' {
		t.Fatalf("unexpected attr ref: %+v", n)
	}
	if n.Left == nil || n.Left.Text != "FIELD" {
		t.Fatalf("unexpected attr ref operand: %+v", n.Left)
	}
}

func TestTypedStringLiteral(t *testing.T) {
	toks := lexAll(t, "X'FF'")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeTypedString || n.AttrLetter != 'X' || n.Text != "FF" {
		t.Fatalf("unexpected typed string: %+v", n)
	}
}

func TestParseListSplitsOnCommas(t *testing.T) {
	toks := lexAll(t, "R1,4(R2),=F'1'")
	list := ParseList(toks, diag.NewSink())
	if len(list.Operands) != 3 {
		t.Fatalf("expected 3 operands, got %+v", list.Operands)
	}
	if list.Operands[0].Kind != NodeQualifiedID {
		t.Fatalf("unexpected first operand: %+v", list.Operands[0])
	}
	if list.Operands[1].Kind != NodeAddress {
		t.Fatalf("unexpected second operand: %+v", list.Operands[1])
	}
	if list.Operands[2].Kind != NodeLiteral || list.Operands[2].Text != "F'1'" {
		t.Fatalf("unexpected literal operand: %+v", list.Operands[2])
	}
}

func TestParseListRecoversAfterBadOperand(t *testing.T) {
	toks := lexAll(t, ",R2")
	sink := diag.NewSink()
	list := ParseList(toks, sink)
	if len(list.Operands) != 2 {
		t.Fatalf("expected an error placeholder plus R2, got %+v", list.Operands)
	}
	if list.Operands[0] != nil {
		t.Fatalf("expected a nil placeholder for the missing operand, got %+v", list.Operands[0])
	}
	if list.Operands[1] == nil || list.Operands[1].Text != "R2" {
		t.Fatalf("expected parsing to resume at R2, got %+v", list.Operands[1])
	}
	if !sink.HasErrors() {
		t.Fatal("expected a diagnostic for the missing operand")
	}
}

func TestParenthesizedExpr(t *testing.T) {
	toks := lexAll(t, "(1+2)*3")
	n, _ := Parse(toks, diag.NewSink())
	if n.Kind != NodeBinary || n.Op != '*' || n.Left.Kind != NodeParen {
		t.Fatalf("unexpected parenthesized expr: %+v", n)
	}
}
