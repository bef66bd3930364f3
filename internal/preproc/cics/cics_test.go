package cics

import (
	"strings"
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc"
)

func decode(t *testing.T, lines ...string) []charstream.Line {
	t.Helper()
	var out []charstream.Line
	for _, l := range lines {
		out = append(out, charstream.DecodeLine([]byte(l), charstream.EOLLF))
	}
	return out
}

func joinText(out []preproc.ReplacedLine) string {
	var b strings.Builder
	for _, l := range out {
		b.WriteString(l.Text)
	}
	return b.String()
}

func TestDFHRESPSubstitution(t *testing.T) {
	lines := decode(t,
		"         EXEC CICS RETURN RESP(R) RESP2(R2)",
		"         MVC   X,DFHRESP(NORMAL)",
		"         END")
	sink := diag.NewSink()
	out, stmts := Preprocess(lines, Config{Enabled: true}, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	if len(stmts) != 1 {
		t.Fatalf("expected one EXEC CICS statement, got %+v", stmts)
	}
	text := joinText(out)
	if !strings.Contains(text, "DFHECALL =X'0E'") {
		t.Fatalf("expected DFHECALL stub, got %q", text)
	}
	if !strings.Contains(text, "=F'0'") {
		t.Fatalf("expected NORMAL substituted to =F'0', got %q", text)
	}
}

func TestExecCICSStatementFieldRanges(t *testing.T) {
	lines := decode(t, "LBL      EXEC CICS RETURN RESP(R)", "         END")
	sink := diag.NewSink()
	_, stmts := Preprocess(lines, Config{Enabled: true}, sink)
	if len(stmts) != 1 {
		t.Fatalf("expected one EXEC CICS statement, got %+v", stmts)
	}
	stmt := stmts[0]
	if stmt.LabelRange == (diag.Range{}) {
		t.Fatalf("expected a populated label range, got %+v", stmt.LabelRange)
	}
	if stmt.InstructionRange == (diag.Range{}) {
		t.Fatalf("expected a populated instruction range, got %+v", stmt.InstructionRange)
	}
	if len(stmt.OperandRanges) != 2 {
		t.Fatalf("expected 2 operand-word ranges (RETURN, RESP(R)), got %+v", stmt.OperandRanges)
	}
}

func TestUnknownDFHRESPNameDiagnoses(t *testing.T) {
	lines := decode(t, "         EXEC CICS RETURN RESP(DFHRESP(BOGUSNAME))", "         END")
	sink := diag.NewSink()
	Preprocess(lines, Config{Enabled: true}, sink)
	if !sink.HasErrors() {
		t.Fatal("expected a DFH7218I diagnostic for an unknown DFHRESP name")
	}
}

func TestMissingEndAppendsWarning(t *testing.T) {
	lines := decode(t, "         EXEC CICS RETURN")
	sink := diag.NewSink()
	out, _ := Preprocess(lines, Config{Enabled: true}, sink)
	if !strings.Contains(joinText(out), "DFH7041I") {
		t.Fatalf("expected a missing-END warning line, got %q", joinText(out))
	}
	if sink.Len() == 0 {
		t.Fatal("expected a diagnostic to be recorded")
	}
}

func TestProlog(t *testing.T) {
	lines := decode(t, "MYPROG   CSECT", "         EXEC CICS RETURN", "         END")
	sink := diag.NewSink()
	out, _ := Preprocess(lines, Config{Enabled: true, Prolog: true}, sink)
	text := joinText(out)
	if !strings.Contains(text, "DFHEIGBL") {
		t.Fatalf("expected DFHEIGBL preamble, got %q", text)
	}
	if !strings.Contains(text, "DFHEIENT") {
		t.Fatalf("expected DFHEIENT prolog, got %q", text)
	}
}
