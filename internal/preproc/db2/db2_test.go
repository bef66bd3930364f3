package db2

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

func TestExecSQLHostVariableExtraction(t *testing.T) {
	lines := decode(t, "         EXEC SQL SELECT :A, :B INTO :C FROM T")
	sink := diag.NewSink()
	_, stmts, translated := Preprocess(lines, Config{Enabled: true}, preproc.NoFetcher{}, sink)
	if !translated {
		t.Fatal("expected translated=true")
	}
	if len(stmts) != 1 || len(stmts[0].OperandRanges) != 3 {
		t.Fatalf("expected 3 host-variable operand ranges, got %+v", stmts)
	}
}

func TestExecSQLStatementFieldRanges(t *testing.T) {
	lines := decode(t, "LBL      EXEC SQL SELECT :A INTO :B FROM T")
	sink := diag.NewSink()
	_, stmts, _ := Preprocess(lines, Config{Enabled: true}, preproc.NoFetcher{}, sink)
	if len(stmts) != 1 {
		t.Fatalf("expected one statement, got %+v", stmts)
	}
	stmt := stmts[0]
	if stmt.LabelRange == (diag.Range{}) {
		t.Fatalf("expected a populated label range, got %+v", stmt.LabelRange)
	}
	if stmt.InstructionRange == (diag.Range{}) {
		t.Fatalf("expected a populated instruction range, got %+v", stmt.InstructionRange)
	}
	if stmt.RemarkRanges != nil {
		t.Fatalf("expected no remark ranges for a statement with no trailing text, got %+v", stmt.RemarkRanges)
	}
}

func TestNoCodeGenStatementSkipsMock(t *testing.T) {
	lines := decode(t, "         EXEC SQL DECLARE C1 CURSOR FOR SELECT 1 FROM T")
	sink := diag.NewSink()
	out, _, translated := Preprocess(lines, Config{Enabled: true}, preproc.NoFetcher{}, sink)
	if !translated {
		t.Fatal("expected translated=true")
	}
	text := joinText(out)
	if !strings.Contains(text, "***$$$") {
		t.Fatalf("expected the no-codegen marker line, got %q", text)
	}
	if strings.Contains(text, "DSNHLI") {
		t.Fatalf("did not expect mock code for a no-codegen statement, got %q", text)
	}
}

func TestConditionalModeReturnsInputUnchangedWhenNothingRecognized(t *testing.T) {
	lines := decode(t, "         LA    R1,A", "         BR    R14")
	sink := diag.NewSink()
	out, _, translated := Preprocess(lines, Config{Enabled: true, Conditional: true}, preproc.NoFetcher{}, sink)
	if translated {
		t.Fatal("expected translated=false")
	}
	got := joinText(out)
	want := "         LA    R1,A         BR    R14"
	if got != want {
		t.Fatalf("expected unchanged input, got %q want %q", got, want)
	}
}

func TestIncludeSQLCAEmitsSkeleton(t *testing.T) {
	lines := decode(t, "         EXEC SQL INCLUDE SQLCA")
	sink := diag.NewSink()
	out, stmts, translated := Preprocess(lines, Config{Enabled: true}, preproc.NoFetcher{}, sink)
	if !translated {
		t.Fatal("expected translated=true")
	}
	if len(stmts) != 1 || !stmts[0].IsInclude {
		t.Fatalf("expected one include statement, got %+v", stmts)
	}
	if !strings.Contains(joinText(out), "SQLCA    DSECT") {
		t.Fatalf("expected SQLCA DSECT skeleton, got %q", joinText(out))
	}
}

func TestIncludeMissDiagnoses(t *testing.T) {
	lines := decode(t, "         EXEC SQL INCLUDE MYMEMBER")
	sink := diag.NewSink()
	Preprocess(lines, Config{Enabled: true}, preproc.NoFetcher{}, sink)
	if !sink.HasErrors() {
		t.Fatal("expected a DB002 diagnostic for a missing include member")
	}
}
