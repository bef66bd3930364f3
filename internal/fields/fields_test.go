package fields

import (
	"strings"
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/operand/asmop"
)

func buildLine(t *testing.T, text string) *logline.Line {
	t.Helper()
	a := logline.NewAssembler(logline.DefaultRegime())
	a.Append(charstream.DecodeLine([]byte(text), charstream.EOLLF), 0)
	return a.Finish()
}

func TestSplitLabeledLine(t *testing.T) {
	line := buildLine(t, "LOOP     L     R1,A")
	sink := diag.NewSink()
	stmt := Split(line, false, sink)

	if stmt.Label == nil || stmt.Label.Text != "LOOP" || stmt.Label.Kind != LabelOrdinary {
		t.Fatalf("unexpected label: %+v", stmt.Label)
	}
	if stmt.Instruction == nil || stmt.Instruction.Name != "L" {
		t.Fatalf("unexpected instruction: %+v", stmt.Instruction)
	}
	if stmt.Operand == nil {
		t.Fatalf("expected an operand field")
	}
	got := joinText(stmt.Operand.Tokens)
	if got != "R1,A" {
		t.Fatalf("unexpected operand text: %q", got)
	}
}

func TestSplitUnlabeledLine(t *testing.T) {
	line := buildLine(t, "         MVC   A,B")
	stmt := Split(line, false, diag.NewSink())
	if stmt.Label != nil {
		t.Fatalf("expected no label, got %+v", stmt.Label)
	}
	if stmt.Instruction == nil || stmt.Instruction.Name != "MVC" {
		t.Fatalf("unexpected instruction: %+v", stmt.Instruction)
	}
}

func TestSplitSequenceSymbolLabel(t *testing.T) {
	line := buildLine(t, ".LOOP    AGO   .LOOP")
	stmt := Split(line, false, diag.NewSink())
	if stmt.Label == nil || stmt.Label.Kind != LabelSequence || stmt.Label.Text != ".LOOP" {
		t.Fatalf("unexpected label: %+v", stmt.Label)
	}
}

func TestSplitVariableSymbolLabel(t *testing.T) {
	line := buildLine(t, "&LBL     SETC  'X'")
	stmt := Split(line, false, diag.NewSink())
	if stmt.Label == nil || stmt.Label.Kind != LabelVariable {
		t.Fatalf("unexpected label: %+v", stmt.Label)
	}
}

func TestSplitNoOperand(t *testing.T) {
	line := buildLine(t, "         ANOP")
	stmt := Split(line, false, diag.NewSink())
	if stmt.Instruction == nil || stmt.Instruction.Name != "ANOP" {
		t.Fatalf("unexpected instruction: %+v", stmt.Instruction)
	}
	if stmt.Operand != nil {
		t.Fatalf("expected no operand field, got %+v", stmt.Operand)
	}
}

func TestDispatchMachine(t *testing.T) {
	line := buildLine(t, "         L     R1,A")
	stmt := Split(line, false, diag.NewSink())
	inst, ok := instr.Lookup(instr.ClassMachine, "L")
	if !ok {
		t.Fatal("expected L to be in the machine catalog")
	}
	got := Dispatch(stmt, inst, false, diag.NewSink())
	if got.Kind != ParsedMachine || len(got.Machine.Operands) != 2 {
		t.Fatalf("expected two parsed machine operands, got %+v", got)
	}
}

func TestDispatchMnemonicAppliesBindings(t *testing.T) {
	line := buildLine(t, "         BR    R14")
	stmt := Split(line, false, diag.NewSink())
	inst, ok := instr.Lookup(instr.ClassMnemonic, "BR")
	if !ok {
		t.Fatal("expected BR to be in the mnemonic catalog")
	}
	got := Dispatch(stmt, inst, false, diag.NewSink())
	if got.Kind != ParsedMachine || len(got.Machine.Operands) != 2 {
		t.Fatalf("expected the pre-bound operand plus R14, got %+v", got)
	}
	if got.Machine.Operands[0].Text != "15" {
		t.Fatalf("expected operand 0 pre-bound to \"15\", got %+v", got.Machine.Operands[0])
	}
	if got.Machine.Operands[1].Text != "R14" {
		t.Fatalf("expected operand 1 to be R14, got %+v", got.Machine.Operands[1])
	}
}

func TestContinuedOperandSpansSegments(t *testing.T) {
	line1 := "         L     R1,A                                                    X"
	line2 := strings.Repeat(" ", 15) + ",B"
	a := logline.NewAssembler(logline.DefaultRegime())
	a.Append(charstream.DecodeLine([]byte(line1), charstream.EOLLF), 0)
	a.Append(charstream.DecodeLine([]byte(line2), charstream.EOLLF), 1)
	line := a.Finish()

	sink := diag.NewSink()
	stmt := Split(line, false, sink)
	if stmt.Operand == nil {
		t.Fatal("expected an operand field")
	}
	if got := joinText(stmt.Operand.Tokens); got != "R1,A,B" {
		t.Fatalf("expected the operand field to span both segments, got %q", got)
	}
	if stmt.Operand.Range.Start.Line != 0 || stmt.Operand.Range.End.Line != 1 {
		t.Fatalf("expected the operand range to span both physical lines, got %+v", stmt.Operand.Range)
	}

	inst, ok := instr.Lookup(instr.ClassMachine, "L")
	if !ok {
		t.Fatal("expected L in the machine catalog")
	}
	got := Dispatch(stmt, inst, false, sink)
	if got.Kind != ParsedMachine || len(got.Machine.Operands) != 3 {
		t.Fatalf("expected three machine operands, got %+v", got)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestDispatchAssembler(t *testing.T) {
	line := buildLine(t, "         DC    F'1'")
	stmt := Split(line, false, diag.NewSink())
	inst, ok := instr.Lookup(instr.ClassAssembler, "DC")
	if !ok {
		t.Fatal("expected DC to be in the assembler catalog")
	}
	got := Dispatch(stmt, inst, false, diag.NewSink())
	if got.Kind != ParsedAsm || len(got.Asm.Operands) != 1 || got.Asm.Operands[0].Kind != asmop.OperandDataDef {
		t.Fatalf("unexpected assembler-operand dispatch: %+v", got)
	}
}

func TestDispatchCAExpr(t *testing.T) {
	line := buildLine(t, "&X       SETA  1+2")
	stmt := Split(line, false, diag.NewSink())
	inst, ok := instr.Lookup(instr.ClassCA, "SETA")
	if !ok {
		t.Fatal("expected SETA to be in the CA catalog")
	}
	got := Dispatch(stmt, inst, false, diag.NewSink())
	if got.Kind != ParsedCA || got.CA == nil {
		t.Fatalf("expected a parsed CA expression, got %+v", got)
	}
}

func TestSplitTrailingRemark(t *testing.T) {
	line := buildLine(t, "         MVC   A,B   A COMMENT")
	stmt := Split(line, false, diag.NewSink())
	if stmt.Instruction == nil || stmt.Instruction.Name != "MVC" {
		t.Fatalf("unexpected instruction: %+v", stmt.Instruction)
	}
	if stmt.Operand == nil {
		t.Fatalf("expected an operand field")
	}
	if got := joinText(stmt.Operand.Tokens); got != "A,B" {
		t.Fatalf("unexpected operand text: %q", got)
	}
	if len(stmt.Remarks) != 1 || stmt.Remarks[0].Text != "A COMMENT" {
		t.Fatalf("unexpected remarks: %+v", stmt.Remarks)
	}
}

func TestSplitNoRemarkWhenOperandUnterminated(t *testing.T) {
	line := buildLine(t, "         MVC   A,B")
	stmt := Split(line, false, diag.NewSink())
	if got := joinText(stmt.Operand.Tokens); got != "A,B" {
		t.Fatalf("unexpected operand text: %q", got)
	}
	if len(stmt.Remarks) != 0 {
		t.Fatalf("expected no remarks, got %+v", stmt.Remarks)
	}
}

func TestDispatchUnknownInstructionIsMacroCall(t *testing.T) {
	line := buildLine(t, "         MYMAC A,&B")
	stmt := Split(line, false, diag.NewSink())
	got := Dispatch(stmt, nil, false, diag.NewSink())
	if got.Kind != ParsedMacro || len(got.Macro.Operands) != 2 {
		t.Fatalf("expected a macro-call dispatch with 2 operands, got %+v", got)
	}
}
