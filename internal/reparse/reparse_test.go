package reparse

import (
	"strings"
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/fields"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
)

func TestReparseDispatchesMachineExpr(t *testing.T) {
	var c Context
	sink := diag.NewSink()
	inst, ok := instr.Lookup(instr.ClassMachine, "L")
	if !ok {
		t.Fatal("expected L in the machine catalog")
	}
	res := c.Reparse("         L     R1,A", Provider{}, inst, false, sink)
	if res.Parsed.Kind != fields.ParsedMachine {
		t.Fatalf("expected a parsed machine expression, got %+v", res.Parsed)
	}
	if c.Iterations != 1 {
		t.Fatalf("expected Iterations == 1, got %d", c.Iterations)
	}
}

func TestReparseCountsIterations(t *testing.T) {
	var c Context
	sink := diag.NewSink()
	for i := 0; i < 3; i++ {
		c.Reparse("         ANOP", Provider{}, nil, false, sink)
	}
	if c.Iterations != 3 {
		t.Fatalf("expected Iterations == 3, got %d", c.Iterations)
	}
}

func TestProviderRemapsPosition(t *testing.T) {
	p := NewProvider([]Anchor{
		{Local: diag.Position{Line: 0, Column: 0}, Original: diag.Position{Line: 5, Column: 20}},
		{Local: diag.Position{Line: 0, Column: 10}, Original: diag.Position{Line: 5, Column: 40}},
	})
	got := p.Position(diag.Position{Line: 0, Column: 3})
	want := diag.Position{Line: 5, Column: 23}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestProviderUnsortedAnchorsStillWork(t *testing.T) {
	p := NewProvider([]Anchor{
		{Local: diag.Position{Line: 0, Column: 10}, Original: diag.Position{Line: 5, Column: 40}},
		{Local: diag.Position{Line: 0, Column: 0}, Original: diag.Position{Line: 5, Column: 20}},
	})
	got := p.Position(diag.Position{Line: 0, Column: 12})
	want := diag.Position{Line: 5, Column: 42}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestZeroProviderIsIdentity(t *testing.T) {
	var p Provider
	pos := diag.Position{Line: 2, Column: 7}
	if got := p.Position(pos); got != pos {
		t.Fatalf("expected identity mapping, got %+v", got)
	}
}

func TestSingleLineDiagnosticDecoratedWithSubstitutedText(t *testing.T) {
	var c Context
	sink := diag.NewSink()
	// An unterminated string in a SETC operand should surface a
	// diagnostic whose message carries the substituted text verbatim.
	inst, ok := instr.Lookup(instr.ClassCA, "SETC")
	if !ok {
		t.Fatal("expected SETC in the CA catalog")
	}
	text := "&X       SETC  'UNTERMINATED"
	c.Reparse(text, Provider{}, inst, false, sink)
	if sink.Len() == 0 {
		t.Fatal("expected a diagnostic for the unterminated string")
	}
	if !strings.Contains(sink.Diagnostics()[0].Message, text) {
		t.Fatalf("expected message to carry the substituted text, got %q", sink.Diagnostics()[0].Message)
	}
}
