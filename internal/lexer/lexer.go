package lexer

import (
	"strings"
	"unicode"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
)

// attributeLetters holds the data-attribute letters that turn a
// following apostrophe into an ATTR token.
var attributeLetters = map[rune]bool{
	'L': true, 'S': true, 'I': true, 'T': true,
	'O': true, 'K': true, 'N': true, 'D': true,
}

// Lexer produces a token stream over one logical line. It is a
// pull-based, single-threaded, non-blocking producer: tokens are
// computed eagerly into an append-only vector the first time the
// logical line is lexed, then served from that vector, so lookahead
// positions stay valid for the life of the parse while the
// implementation stays a total function of its input (no I/O, no
// goroutines).
type Lexer struct {
	line *logline.Line

	continuationEnabled bool
	processAllowed      bool

	tokens []Token // all tokens, including hidden channel
	filter []int   // indices into tokens of default-channel tokens

	readPos int // cursor into filter, for Next()/Peek()
}

// New lexes the given logical line and returns a Lexer positioned at
// its first token. processAllowed should be true only when this is
// the very first logical line of the source and the host has enabled
// *PROCESS recognition.
func New(line *logline.Line, processAllowed bool) *Lexer {
	l := &Lexer{
		line:                line,
		continuationEnabled: true,
		processAllowed:      processAllowed,
	}
	l.scan()
	return l
}

// SetContinuationEnabled sets the continuation-column flag. New has
// already scanned the whole line, so the tokens this Lexer serves are
// not re-scanned and do not change.
func (l *Lexer) SetContinuationEnabled(b bool) { l.continuationEnabled = b }

// SetProcessAllowed sets the *PROCESS flag. Like SetContinuationEnabled
// it does not re-scan the tokens New already produced.
func (l *Lexer) SetProcessAllowed(b bool) { l.processAllowed = b }

// AllTokens returns every token produced, including the hidden
// channel, in original order, for range recovery.
func (l *Lexer) AllTokens() []Token { return l.tokens }

// Peek returns the default-channel token `offset` positions ahead of
// the read cursor (0 is the next token to be returned by Next).
func (l *Lexer) Peek(offset int) Token {
	i := l.readPos + offset
	if i < 0 || i >= len(l.filter) {
		return l.eofToken()
	}
	return l.tokens[l.filter[i]]
}

// Next consumes and returns the next default-channel token.
func (l *Lexer) Next() Token {
	t := l.Peek(0)
	if t.Kind != EOF {
		l.readPos++
	}
	return t
}

func (l *Lexer) eofToken() Token {
	pos := diag.Position{}
	if n := len(l.line.Segments); n > 0 {
		pos = l.line.CodePosition(n-1, len(l.line.Segments[n-1].Code()))
	}
	return Token{Kind: EOF, Range: diag.Range{Start: pos, End: pos}}
}

// scanState carries the one-shot lexing latches (variable-symbol
// naming, attribute-reference apostrophe) across the whole pass.
type scanState struct {
	creatingVarSymbol bool
	creatingAttrRef   bool
	lastAttrLetter    bool // previous default-channel token was a length-1 ORDSYMBOL attribute letter
	sawProcess        bool
}

func (l *Lexer) scan() {
	st := &scanState{}
	for segIdx := range l.line.Segments {
		seg := &l.line.Segments[segIdx]

		if begin := seg.Begin(); len(begin) > 0 {
			l.emitHidden(IGNORED, segIdx, 0, len(begin))
		}

		codeStartCol := len(seg.Begin())
		code := seg.Code()

		l.scanCode(st, segIdx, codeStartCol, code)

		if seg.RequestsContinuation() && l.continuationEnabled {
			l.emitHidden(CONTINUATION, segIdx, codeStartCol+len(code), 1)
		}
		if ign := seg.Ignore(); len(ign) > 0 {
			ignoreStartCol := codeStartCol + len(code) + len(seg.Continuation())
			l.emitHidden(IGNORED, segIdx, ignoreStartCol, len(ign))
		}
	}
}

func (l *Lexer) scanCode(st *scanState, segIdx, baseCol int, code []rune) {
	i := 0
	for i < len(code) {
		// *PROCESS recognition: only at column `begin` of segment 0,
		// only once, only when allowed.
		if l.processAllowed && segIdx == 0 && i == 0 && !st.sawProcess && len(code) >= 8 {
			if strings.EqualFold(string(code[:8]), "*PROCESS") {
				l.emit(PROCESS, segIdx, baseCol, code[:8], st)
				st.sawProcess = true
				i += 8
				continue
			}
		}

		c := code[i]
		switch {
		case isBlank(c):
			j := i
			for j < len(code) && isBlank(code[j]) {
				j++
			}
			l.emit(SPACE, segIdx, baseCol+i, code[i:j], st)
			i = j

		case c == ',':
			l.emit(COMMA, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '(':
			l.emit(LPAR, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == ')':
			l.emit(RPAR, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '.':
			l.emit(DOT, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '*':
			l.emit(ASTERISK, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '/':
			l.emit(SLASH, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '-':
			l.emit(MINUS, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '+':
			l.emit(PLUS, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '=':
			l.emit(EQUALS, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '<':
			l.emit(LT, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '>':
			l.emit(GT, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '&':
			l.emit(AMPERSAND, segIdx, baseCol+i, code[i:i+1], st)
			st.creatingVarSymbol = true
			i++
		case c == '|':
			l.emit(VERTICAL, segIdx, baseCol+i, code[i:i+1], st)
			i++
		case c == '\'':
			if st.lastAttrLetter || st.creatingAttrRef {
				l.emit(ATTR, segIdx, baseCol+i, code[i:i+1], st)
				st.creatingAttrRef = true
			} else {
				l.emit(APOSTROPHE, segIdx, baseCol+i, code[i:i+1], st)
			}
			i++

		case isOrdStart(c):
			j := i + 1
			for j < len(code) && isOrdCont(code[j]) {
				j++
			}
			n := j - i
			switch {
			case st.creatingVarSymbol:
				l.emit(ORDSYMBOL, segIdx, baseCol+i, code[i:j], st)
				st.creatingVarSymbol = false
			case n <= 63:
				l.emit(ORDSYMBOL, segIdx, baseCol+i, code[i:j], st)
			default:
				l.emit(IDENTIFIER, segIdx, baseCol+i, code[i:j], st)
			}
			i = j

		case isDigit(c):
			j := i + 1
			for j < len(code) && isDigit(code[j]) {
				j++
			}
			l.emit(NUM, segIdx, baseCol+i, code[i:j], st)
			i = j

		default:
			// Unrecognized character: emit as a single-rune IDENTIFIER
			// so the parser sees something and can diagnose it,
			// rather than the lexer silently dropping input.
			l.emit(IDENTIFIER, segIdx, baseCol+i, code[i:i+1], st)
			i++
		}
	}
}

// emit appends a default-channel token of the given kind with the
// given text, starting at column `col` within segment `segIdx`.
func (l *Lexer) emit(k Kind, segIdx, col int, text []rune, st *scanState) {
	start := l.line.OriginalPosition(segIdx, col)
	end := l.line.OriginalPosition(segIdx, col+len(text))
	s := string(text)
	tok := Token{
		Kind:    k,
		Channel: ChannelDefault,
		Text:    s,
		Range:   diag.Range{Start: start, End: end},
		Index:   len(l.tokens),
	}
	l.filter = append(l.filter, len(l.tokens))
	l.tokens = append(l.tokens, tok)

	// Track the length-1 attribute-letter latch for the *next* token
	// only: a following apostrophe adjacent to this token is ATTR.
	st.lastAttrLetter = k == ORDSYMBOL && len(text) == 1 && attributeLetters[unicode.ToUpper(text[0])]
	if k != APOSTROPHE {
		st.creatingAttrRef = false
	}
}

func (l *Lexer) emitHidden(k Kind, segIdx, col, length int) {
	seg := &l.line.Segments[segIdx]
	var text string
	switch k {
	case IGNORED:
		switch {
		case col < len(seg.Begin()):
			text = string(seg.Begin()[col : col+length])
		default:
			ignoreStart := len(seg.Begin()) + len(seg.Code()) + len(seg.Continuation())
			off := col - ignoreStart
			if off >= 0 && off+length <= len(seg.Ignore()) {
				text = string(seg.Ignore()[off : off+length])
			}
		}
	case CONTINUATION:
		text = string(seg.Continuation())
	}
	start := l.line.OriginalPosition(segIdx, col)
	end := l.line.OriginalPosition(segIdx, col+length)
	tok := Token{
		Kind:    k,
		Channel: ChannelHidden,
		Text:    text,
		Range:   diag.Range{Start: start, End: end},
		Index:   len(l.tokens),
	}
	l.tokens = append(l.tokens, tok)
}

func isBlank(c rune) bool { return c == ' ' || c == '\t' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }
func isOrdStart(c rune) bool {
	return unicode.IsLetter(c) || c == '$' || c == '_' || c == '#' || c == '@'
}
func isOrdCont(c rune) bool { return isOrdStart(c) || isDigit(c) }
