package dataop

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

func TestSimpleFullword(t *testing.T) {
	dd, remain := Parse(lexAll(t, "F'4'"), true, diag.NewSink())
	if dd.Type != 'F' {
		t.Fatalf("expected type F, got %q", dd.Type)
	}
	if dd.Nominal == nil || !dd.Nominal.IsString || dd.Nominal.String != "4" {
		t.Fatalf("unexpected nominal: %+v", dd.Nominal)
	}
	if len(remain) != 0 {
		t.Fatalf("unexpected remaining tokens: %v", remain)
	}
}

func TestCharacterLengthShorthand(t *testing.T) {
	dd, _ := Parse(lexAll(t, "CL10'X'"), true, diag.NewSink())
	if dd.Type != 'C' {
		t.Fatalf("expected type C, got %q", dd.Type)
	}
	if dd.L == nil || dd.L.Text != "10" {
		t.Fatalf("unexpected length modifier: %+v", dd.L)
	}
}

func TestDuplicationFactor(t *testing.T) {
	dd, _ := Parse(lexAll(t, "3F'1'"), true, diag.NewSink())
	if dd.DuplFactor == nil || dd.DuplFactor.Text != "3" {
		t.Fatalf("unexpected dupl factor: %+v", dd.DuplFactor)
	}
	if dd.Type != 'F' {
		t.Fatalf("expected type F, got %q", dd.Type)
	}
}

func TestAddressNominal(t *testing.T) {
	dd, _ := Parse(lexAll(t, "A(LABEL)"), true, diag.NewSink())
	if dd.Type != 'A' {
		t.Fatalf("expected type A, got %q", dd.Type)
	}
	if dd.Nominal == nil || dd.Nominal.IsString || len(dd.Nominal.Addresses) != 1 {
		t.Fatalf("unexpected nominal: %+v", dd.Nominal)
	}
}

func TestRTypeLowercasedOutsideGOFF(t *testing.T) {
	dd, _ := Parse(lexAll(t, "R(LABEL)"), false, diag.NewSink())
	if dd.Type != 'r' {
		t.Fatalf("expected lower-case r outside GOFF, got %q", dd.Type)
	}
}

func TestRTypeKeepsCaseInGOFF(t *testing.T) {
	dd, _ := Parse(lexAll(t, "R(LABEL)"), true, diag.NewSink())
	if dd.Type != 'R' {
		t.Fatalf("expected upper-case R in GOFF mode, got %q", dd.Type)
	}
}

func TestExtendedType(t *testing.T) {
	dd, _ := Parse(lexAll(t, "AD(LABEL)"), true, diag.NewSink())
	if dd.Type != 'A' || dd.Ext != 'D' {
		t.Fatalf("expected type A ext D, got type=%q ext=%q", dd.Type, dd.Ext)
	}
}
