package macroop

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

func TestSimpleOperandList(t *testing.T) {
	toks := lexAll(t, "A,B,C")
	list := Parse(toks, diag.NewSink())
	if len(list.Operands) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(list.Operands))
	}
	for i, want := range []string{"A", "B", "C"} {
		chain := list.Operands[i]
		if len(chain) != 1 || chain[0].Kind != CharStrConc || chain[0].Text != want {
			t.Fatalf("operand %d: got %+v, want char_str %q", i, chain, want)
		}
	}
}

func TestVariableSymbolWithSubscript(t *testing.T) {
	toks := lexAll(t, "&ARR(1,&I)")
	list := Parse(toks, diag.NewSink())
	if len(list.Operands) != 1 {
		t.Fatalf("expected 1 operand, got %d", len(list.Operands))
	}
	chain := list.Operands[0]
	if len(chain) != 1 || chain[0].Kind != VarSymConc || chain[0].Name != "ARR" {
		t.Fatalf("unexpected chain: %+v", chain)
	}
	if len(chain[0].Subs) != 2 {
		t.Fatalf("expected 2 subscripts, got %d", len(chain[0].Subs))
	}
	if chain[0].Subs[1][0].Kind != VarSymConc || chain[0].Subs[1][0].Name != "I" {
		t.Fatalf("unexpected second subscript: %+v", chain[0].Subs[1])
	}
}

func TestSublistOperandChain(t *testing.T) {
	toks := lexAll(t, "(A,B)")
	list := Parse(toks, diag.NewSink())
	if len(list.Operands) != 1 {
		t.Fatalf("expected 1 operand, got %d", len(list.Operands))
	}
	chain := list.Operands[0]
	if len(chain) != 1 || chain[0].Kind != SublistConc {
		t.Fatalf("expected a sublist concatenation point, got %+v", chain)
	}
	if len(chain[0].Items) != 2 {
		t.Fatalf("expected 2 sublist items, got %d", len(chain[0].Items))
	}
}

func TestConcatenatedLabelWithDot(t *testing.T) {
	toks := lexAll(t, "&A.TEXT")
	list := Parse(toks, diag.NewSink())
	chain := list.Operands[0]
	if len(chain) < 2 || chain[0].Kind != VarSymConc || chain[1].Kind != DotConc {
		t.Fatalf("expected var_sym then dot concatenation, got %+v", chain)
	}
}

func TestQuotedStringOperand(t *testing.T) {
	toks := lexAll(t, "'HELLO'")
	list := Parse(toks, diag.NewSink())
	chain := list.Operands[0]
	if len(chain) != 1 || chain[0].Kind != CharStrConc || chain[0].Text != "'HELLO'" {
		t.Fatalf("unexpected quoted chain: %+v", chain)
	}
}
