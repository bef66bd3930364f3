// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cics implements the CICS EXEC preprocessor: a
// source-to-source rewriter that recognizes *ASM option lines and
// EXEC CICS commands, substitutes DFHRESP/DFHVALUE condition names,
// and tracks the DFHEIGBL/DFHEISTG/DFHEIENT/DFHEIRET/DFHEIEND
// prolog/epilog state machine across CSECT/RSECT/DSECT/START/END.
package cics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc"
)

// Config holds the CICS preprocessor options. *ASM lines encountered
// at the start of the source may override Prolog/Epilog/Leasm.
type Config struct {
	Enabled bool
	Prolog  bool
	Epilog  bool
	Leasm   bool
}

// dfhrespCodes and dfhvalueCodes are static sorted tables mapping a
// condition name to its numeric substitution value, carried the same
// way instr's catalog tables are carried.
type condition struct {
	Name string
	Code int
}

var dfhrespCodes = []condition{
	{"DSIDERR", 12}, {"DUPKEY", 15}, {"DUPREC", 14}, {"ENDFILE", 20},
	{"EOC", 6}, {"EODS", 5}, {"EOF", 4}, {"ERROR", 1}, {"FILENOTFOUND", 12},
	{"ILLOGIC", 21}, {"INVREQ", 16}, {"IOERR", 17}, {"ITEMERR", 26},
	{"LENGERR", 22}, {"MAPFAIL", 36}, {"NORMAL", 0}, {"NOSPACE", 18},
	{"NOTAUTH", 70}, {"NOTFND", 13}, {"NOTOPEN", 19}, {"PGMIDERR", 27},
	{"QBUSY", 25}, {"QIDERR", 44}, {"QZERO", 23}, {"SYSIDERR", 53},
	{"TERMIDERR", 11}, {"TRANSIDERR", 28},
}

var dfhvalueCodes = []condition{
	{"ACQUIRED", 69}, {"ACTIVE", 181}, {"ADD", 291}, {"ALTERNATE", 197},
	{"APPC", 124}, {"ASSEMBLER", 150}, {"BACKOUT", 192}, {"BASE", 10},
	{"BDAM", 2}, {"BELOW", 159}, {"BLOCKED", 16}, {"BUSY", 612},
	{"CANCELLED", 624}, {"CICSDATAKEY", 379}, {"DISABLED", 641},
	{"ENABLED", 642},
}

func init() {
	if !sort.SliceIsSorted(dfhrespCodes, func(i, j int) bool { return dfhrespCodes[i].Name < dfhrespCodes[j].Name }) {
		panic("cics: DFHRESP table is not sorted by name")
	}
	if !sort.SliceIsSorted(dfhvalueCodes, func(i, j int) bool { return dfhvalueCodes[i].Name < dfhvalueCodes[j].Name }) {
		panic("cics: DFHVALUE table is not sorted by name")
	}
}

func lookupCondition(table []condition, name string) (int, bool) {
	name = strings.ToUpper(name)
	i := sort.Search(len(table), func(i int) bool { return table[i].Name >= name })
	if i < len(table) && table[i].Name == name {
		return table[i].Code, true
	}
	return 0, false
}

type state int

const (
	stateBeforeEntry state = iota
	stateAfterGBL
	stateAfterEntry
)

var (
	reASM       = regexp.MustCompile(`(?i)^\*ASM\s+(XOPTS|XOPT|CICS)\((.*)\)\s*$`)
	reExecCICS  = regexp.MustCompile(`(?i)^(\S*)\s*(EXEC\s+CICS)\s+(.*)$`)
	reDFH       = regexp.MustCompile(`(?i)DFH(RESP|VALUE)\(([A-Za-z0-9_]+)\)`)
	reDFHAt     = regexp.MustCompile(`(?i)^DFH(RESP|VALUE)\(([A-Za-z0-9_]+)\)`)
	reSectionOp = regexp.MustCompile(`(?i)^(\S*)\s*(CSECT|RSECT|DSECT|START|END)\b(.*)$`)
)

// preprocessor carries the prolog/epilog state machine and the
// accumulated rewritten document.
type preprocessor struct {
	cfg    Config
	state  state
	sawEnd bool
	out    []preproc.ReplacedLine
	stmts  []preproc.Statement
	sink   *diag.Sink
}

// Preprocess rewrites lines per cfg. *ASM option lines at the start of
// the source may override cfg's Prolog/Epilog/Leasm before any
// rewriting happens.
func Preprocess(lines []charstream.Line, cfg Config, sink *diag.Sink) ([]preproc.ReplacedLine, []preproc.Statement) {
	p := &preprocessor{cfg: cfg, sink: sink}
	logical := preproc.SegmentLogicalLines(lines, 0, logline.DefaultRegime())

	for _, ll := range logical {
		text := string(ll.Text())
		trimmed := strings.TrimRight(text, " \t")
		originLine := ll.Segments[0].LineNumber

		switch {
		case reASM.MatchString(trimmed):
			p.handleASMOption(trimmed, originLine)

		case reExecCICS.MatchString(trimmed):
			p.handleExecCICS(ll, trimmed, originLine)

		case reSectionOp.MatchString(trimmed):
			p.handleSectionOp(ll, trimmed, originLine)

		case reDFH.MatchString(trimmed):
			p.handleDFHOnly(ll, trimmed, originLine)

		default:
			p.emit(text, originLine)
		}
	}

	if !p.sawEnd {
		lastLine := 0
		if n := len(logical); n > 0 {
			lastLine = logical[n-1].Segments[0].LineNumber
		}
		p.out = append(p.out, preproc.ReplacedLine{Text: "*DFH7041I W  NO END STATEMENT FOUND\n", OriginalLine: lastLine})
		if sink != nil {
			sink.Addf(diag.CodeCICSMissingEnd, diag.SeverityWarning, diag.Range{}, "source ended without an END statement")
		}
	}

	return p.out, p.stmts
}

func (p *preprocessor) emit(text string, originLine int) {
	p.out = append(p.out, preproc.ReplacedLine{Text: text, OriginalLine: originLine})
}

func (p *preprocessor) handleASMOption(line string, originLine int) {
	m := reASM.FindStringSubmatch(line)
	for _, opt := range strings.Split(m[2], ",") {
		switch strings.ToUpper(strings.TrimSpace(opt)) {
		case "PROLOG":
			p.cfg.Prolog = true
		case "NOPROLOG":
			p.cfg.Prolog = false
		case "EPILOG":
			p.cfg.Epilog = true
		case "NOEPILOG":
			p.cfg.Epilog = false
		case "LEASM":
			p.cfg.Leasm = true
		case "NOLEASM":
			p.cfg.Leasm = false
		default:
			p.sink.Addf(diag.CodeCICSBadOption, diag.SeverityError, diag.Range{}, "unrecognized *ASM option %q", opt)
		}
	}
	p.emit(line+"\n", originLine)
}

// handleExecCICS emits the original-line echo comment plus a
// DFHECALL stub, substitutes DFHRESP/DFHVALUE names, and flags
// continuation errors within the statement with a DFH7080I warning.
func (p *preprocessor) handleExecCICS(ll *logline.Line, line string, originLine int) {
	if ll.AnyContinuationError {
		p.out = append(p.out, preproc.ReplacedLine{Text: "*DFH7080I W  CONTINUATION ERROR IN EXEC CICS STATEMENT\n", OriginalLine: originLine})
		if p.sink != nil {
			p.sink.Addf(diag.CodeCICSContinuationWarn, diag.SeverityWarning, ll.RangeOf(ll.Begin(), ll.End()), "continuation error within EXEC CICS statement")
		}
	}

	loc := reExecCICS.FindStringSubmatchIndex(line)
	label, rest := line[loc[2]:loc[3]], line[loc[6]:loc[7]]

	stmt := preproc.Statement{
		StmtRange:        ll.RangeOf(ll.Begin(), ll.End()),
		LabelRange:       preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[2], End: loc[3]}),
		InstructionRange: preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[4], End: loc[5]}),
		OperandRanges:    preproc.WordRanges(ll, line, preproc.FieldIndexRange{Start: loc[6], End: loc[7]}),
		RemarkRanges:     preproc.TrailingRemarkRanges(ll, line, preproc.FieldIndexRange{Start: loc[7], End: len(line)}),
	}
	p.out = append(p.out, preproc.ReplacedLine{Text: "*" + line + "\n", OriginalLine: originLine})

	if strings.TrimSpace(rest) == "" {
		p.sink.Addf(diag.CodeCICSBadCommand, diag.SeverityError, stmt.StmtRange, "malformed EXEC CICS command")
	}
	substituted := p.substituteDFH(rest, ll)

	dfhecall := padLabel(label) + "DFHECALL =X'0E'"
	p.out = append(p.out, preproc.ReplacedLine{Text: dfhecall + "\n", OriginalLine: originLine})
	if substituted != rest {
		// Re-emit the substituted statement with the label preserved
		// and continuation redone at column 72 with a 15-column indent.
		p.out = append(p.out, continuedAt72(padLabel(label)+substituted, 15, originLine)...)
	}
	p.stmts = append(p.stmts, stmt)
}

// substituteDFH replaces DFHRESP(name)/DFHVALUE(name) with =F'number',
// preserving quoted strings, L' attribute syntax, and '--' comments.
// Unknown names surface a DFH7218I diagnostic and are left
// unsubstituted so the replacement remains syntactically well-formed.
func (p *preprocessor) substituteDFH(text string, ll *logline.Line) string {
	var b strings.Builder
	inString := false
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case inString:
			if c == '\'' {
				inString = false
			}
			b.WriteByte(c)
			i++
		case c == '\'':
			// An apostrophe after a lone attribute letter (L'SYM and
			// friends) is attribute syntax, not a string opener.
			if !isAttrApostrophe(text, i) {
				inString = true
			}
			b.WriteByte(c)
			i++
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			b.WriteString(text[i:])
			i = len(text)
		default:
			if m := reDFHAt.FindStringSubmatch(text[i:]); m != nil {
				kind, name := strings.ToUpper(m[1]), m[2]
				table := dfhrespCodes
				if kind == "VALUE" {
					table = dfhvalueCodes
				}
				code, found := lookupCondition(table, name)
				if found {
					b.WriteString("=F'" + strconv.Itoa(code) + "'")
				} else {
					p.sink.Addf(diag.CodeCICSUnknownCond, diag.SeverityError, ll.RangeOf(ll.Begin(), ll.End()), "unknown DFH%s name %q", kind, name)
					b.WriteString(m[0])
				}
				i += len(m[0])
				continue
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// isAttrApostrophe reports whether the apostrophe at text[i] follows a
// lone data-attribute letter, making it attribute syntax rather than a
// string opener.
func isAttrApostrophe(text string, i int) bool {
	if i == 0 {
		return false
	}
	letter := text[i-1]
	if !strings.ContainsRune("LSITOKND", rune(letter&^0x20)) {
		return false
	}
	return i < 2 || !isIdentByte(text[i-2])
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' || b == '#' || b == '@' ||
		(b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// handleDFHOnly substitutes DFHRESP/DFHVALUE names appearing in the
// operand text of an ordinary statement that is not itself an EXEC
// CICS command; substitution applies to any operand text, not only
// EXEC CICS lines.
func (p *preprocessor) handleDFHOnly(ll *logline.Line, line string, originLine int) {
	substituted := p.substituteDFH(line, ll)
	p.out = append(p.out, continuedAt72(substituted, 15, originLine)...)
}

// handleSectionOp tracks the RSECT/CSECT/DSECT/START/END state
// machine, injecting the DFHEIGBL preamble on the first section
// statement, DFHEISTG on its DSECT, the DFHEIENT prolog on
// RSECT/CSECT/START, and the DFHEIRET/DFHEISTG/DFHEIEND epilog on
// END.
func (p *preprocessor) handleSectionOp(ll *logline.Line, line string, originLine int) {
	m := reSectionOp.FindStringSubmatch(line)
	label, op := m[1], strings.ToUpper(m[2])

	if p.state == stateBeforeEntry {
		p.out = append(p.out, preproc.ReplacedLine{Text: dfheigblLine(p.cfg), OriginalLine: originLine})
		p.state = stateAfterGBL
	}

	switch op {
	case "DSECT":
		p.out = append(p.out, preproc.ReplacedLine{Text: line + "\n", OriginalLine: originLine})
		if strings.Contains(strings.ToUpper(label), "DFHEISTG") {
			p.out = append(p.out, preproc.ReplacedLine{Text: "DFHEISTG DSECT\n", OriginalLine: originLine})
		}
	case "RSECT", "CSECT", "START":
		p.out = append(p.out, preproc.ReplacedLine{Text: line + "\n", OriginalLine: originLine})
		if p.cfg.Prolog && p.state != stateAfterEntry {
			p.out = append(p.out, preproc.ReplacedLine{Text: "         DFHEIENT\n", OriginalLine: originLine})
			p.state = stateAfterEntry
		}
	case "END":
		p.sawEnd = true
		if p.cfg.Epilog {
			p.out = append(p.out,
				preproc.ReplacedLine{Text: "         DFHEIRET\n", OriginalLine: originLine},
				preproc.ReplacedLine{Text: "         DFHEISTG\n", OriginalLine: originLine},
				preproc.ReplacedLine{Text: "         DFHEIEND\n", OriginalLine: originLine},
			)
		}
		p.out = append(p.out, preproc.ReplacedLine{Text: line + "\n", OriginalLine: originLine})
	}
}

func dfheigblLine(cfg Config) string {
	bits := "RS"
	if cfg.Leasm {
		bits = "LE"
	} else {
		bits += ",NOLE"
	}
	return "         DFHEIGBL " + bits + "\n"
}

// continuedAt72 re-wraps a rewritten statement across physical lines,
// breaking at column 71 and continuing at column 72 with a
// continIndent-column blank prefix on the next line.
func continuedAt72(text string, continIndent, originLine int) []preproc.ReplacedLine {
	const width = 71
	var out []preproc.ReplacedLine
	for len(text) > 0 {
		if len(text) <= width {
			out = append(out, preproc.ReplacedLine{Text: text + "\n", OriginalLine: originLine})
			break
		}
		cut := width
		out = append(out, preproc.ReplacedLine{Text: text[:cut] + "X\n", OriginalLine: originLine})
		text = strings.Repeat(" ", continIndent) + text[cut:]
	}
	return out
}

func padLabel(label string) string {
	if label == "" {
		return strings.Repeat(" ", 9)
	}
	if len(label) >= 9 {
		return label + " "
	}
	return label + strings.Repeat(" ", 9-len(label))
}
