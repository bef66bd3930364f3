package asmop

import (
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
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

func TestDCOperandParsesAsDataDef(t *testing.T) {
	inst, ok := instr.Lookup(instr.ClassAssembler, "DC")
	if !ok {
		t.Fatal("DC not found in assembler catalog")
	}
	list := Parse("DC", inst, lexAll(t, "F'4'"), true, diag.NewSink())
	if len(list.Operands) != 1 || list.Operands[0].Kind != OperandDataDef {
		t.Fatalf("expected one data-def operand, got %+v", list.Operands)
	}
	if list.Operands[0].DataDef.Type != 'F' {
		t.Fatalf("unexpected type: %+v", list.Operands[0].DataDef)
	}
}

func TestUSINGOperandsParseAsExpr(t *testing.T) {
	inst, ok := instr.Lookup(instr.ClassAssembler, "USING")
	if !ok {
		t.Fatal("USING not found in assembler catalog")
	}
	sink := diag.NewSink()
	list := Parse("USING", inst, lexAll(t, "0,R1"), false, sink)
	if len(list.Operands) != 2 {
		t.Fatalf("expected two operands, got %d", len(list.Operands))
	}
	if list.Operands[0].Kind != OperandExpr || list.Operands[1].Kind != OperandExpr {
		t.Fatalf("expected expr operands, got %+v", list.Operands)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestArityTooFewOperandsDiagnoses(t *testing.T) {
	inst, ok := instr.Lookup(instr.ClassAssembler, "USING")
	if !ok {
		t.Fatal("USING not found in assembler catalog")
	}
	sink := diag.NewSink()
	Parse("USING", inst, lexAll(t, "0"), false, sink)
	if !sink.HasErrors() {
		t.Fatal("expected an arity diagnostic")
	}
}

func TestDROPOperandsParseAsExpr(t *testing.T) {
	inst, ok := instr.Lookup(instr.ClassAssembler, "DROP")
	if !ok {
		t.Fatal("DROP not found in assembler catalog")
	}
	sink := diag.NewSink()
	list := Parse("DROP", inst, lexAll(t, "R1,R2"), false, sink)
	if len(list.Operands) != 2 {
		t.Fatalf("expected two operands, got %d", len(list.Operands))
	}
	// DROP is a machine-expression position per exprMnemonics.
	if list.Operands[0].Kind != OperandExpr {
		t.Fatalf("expected expr operand, got %+v", list.Operands[0])
	}
}
