package lexer

import (
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
)

func oneLine(t *testing.T, text string) *logline.Line {
	t.Helper()
	a := logline.NewAssembler(logline.DefaultRegime())
	a.Append(charstream.DecodeLine([]byte(text), charstream.EOLLF), 0)
	return a.Finish()
}

func defaultKinds(l *Lexer) []Kind {
	var kinds []Kind
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestBasicTokens(t *testing.T) {
	line := oneLine(t, "LABEL    L     R1,A(1,2)")
	l := New(line, false)

	var texts []string
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		if tok.Kind != SPACE {
			texts = append(texts, tok.Text)
		}
	}
	want := []string{"LABEL", "L", "R1", ",", "A", "(", "1", ",", "2", ")"}
	if len(texts) != len(want) {
		t.Fatalf("got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d: got %q want %q", i, texts[i], want[i])
		}
	}
}

func TestIdentifierVsOrdSymbolLength(t *testing.T) {
	long := ""
	for i := 0; i < 64; i++ {
		long += "A"
	}
	line := oneLine(t, long)
	l := New(line, false)
	tok := l.Next()
	if tok.Kind != IDENTIFIER {
		t.Fatalf("expected IDENTIFIER for 64-char run, got %s", tok.Kind)
	}

	line2 := oneLine(t, long[:63])
	l2 := New(line2, false)
	tok2 := l2.Next()
	if tok2.Kind != ORDSYMBOL {
		t.Fatalf("expected ORDSYMBOL for 63-char run, got %s", tok2.Kind)
	}
}

func TestAttributeApostrophe(t *testing.T) {
	line := oneLine(t, "L'FIELD")
	l := New(line, false)
	tok1 := l.Next()
	if tok1.Kind != ORDSYMBOL || tok1.Text != "L" {
		t.Fatalf("expected ORDSYMBOL 'L', got %s %q", tok1.Kind, tok1.Text)
	}
	tok2 := l.Next()
	if tok2.Kind != ATTR {
		t.Fatalf("expected ATTR after length-1 attribute letter, got %s", tok2.Kind)
	}
}

func TestApostropheWithoutAttrLetter(t *testing.T) {
	line := oneLine(t, "AB'X'")
	l := New(line, false)
	tok1 := l.Next()
	if tok1.Kind != ORDSYMBOL || tok1.Text != "AB" {
		t.Fatalf("unexpected first token: %s %q", tok1.Kind, tok1.Text)
	}
	tok2 := l.Next()
	if tok2.Kind != APOSTROPHE {
		t.Fatalf("expected APOSTROPHE (ord symbol length != 1), got %s", tok2.Kind)
	}
}

func TestAmpersandLatchesVarSymbol(t *testing.T) {
	long := "&"
	for i := 0; i < 70; i++ {
		long += "A"
	}
	line := oneLine(t, long)
	l := New(line, false)
	amp := l.Next()
	if amp.Kind != AMPERSAND {
		t.Fatalf("expected AMPERSAND, got %s", amp.Kind)
	}
	ord := l.Next()
	if ord.Kind != ORDSYMBOL {
		t.Fatalf("expected ORDSYMBOL even though >63 chars after '&', got %s", ord.Kind)
	}
}

func TestHiddenChannelContinuationAndIgnored(t *testing.T) {
	a := logline.NewAssembler(logline.DefaultRegime())
	line1 := "         L     R1,A                                                    X"
	a.Append(charstream.DecodeLine([]byte(line1), charstream.EOLLF), 0)
	a.Append(charstream.DecodeLine([]byte("               ,B"), charstream.EOLLF), 1)
	ll := a.Finish()

	l := New(ll, false)
	var hiddenKinds []Kind
	for _, tok := range l.AllTokens() {
		if tok.IsHidden() {
			hiddenKinds = append(hiddenKinds, tok.Kind)
		}
	}
	foundContinuation := false
	for _, k := range hiddenKinds {
		if k == CONTINUATION {
			foundContinuation = true
		}
	}
	if !foundContinuation {
		t.Fatalf("expected a CONTINUATION token in hidden channel, got %v", hiddenKinds)
	}

	// Default-channel view must skip hidden tokens entirely.
	kinds := defaultKinds(New(ll, false))
	for _, k := range kinds {
		if k == CONTINUATION || k == IGNORED {
			t.Fatalf("hidden-channel kind %s leaked into default view", k)
		}
	}
}

func TestProcessRecognition(t *testing.T) {
	line := oneLine(t, "*PROCESS OPT(X)")
	l := New(line, true)
	tok := l.Next()
	if tok.Kind != PROCESS {
		t.Fatalf("expected PROCESS token, got %s", tok.Kind)
	}
}
