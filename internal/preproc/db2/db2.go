// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db2 implements the DB2 SQL preprocessor: a source-to-source
// rewriter that recognizes EXEC SQL, EXEC SQL INCLUDE, and SQL TYPE
// IS forms on the pre-lex document and emits HLASM replacement lines.
package db2

import (
	"regexp"
	"strings"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/charstream"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/logline"
	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/preproc"
)

// Config holds the DB2 preprocessor options.
type Config struct {
	Enabled       bool
	Conditional   bool
	VersionString string
}

var noCodeGen = regexp.MustCompile(`(?i)^(DECLARE|WHENEVER|BEGIN\s+DECLARE\s+SECTION|END\s+DECLARE\s+SECTION)(\s.*)?$`)

var (
	reExecSQL = regexp.MustCompile(`(?i)^(\S*)\s*(EXEC\s+SQL)\s+(.*)$`)
	reSQLType = regexp.MustCompile(`(?i)^(\S*)\s*(SQL\s+TYPE\s+IS)\s+(.*)$`)
	reInclude = regexp.MustCompile(`(?i)^INCLUDE\s+(\S+)\s*$`)
)

// Preprocess rewrites lines per cfg, returning the replacement
// document, one Statement per recognized construct (for IDE
// highlighting), and whether anything DB2-specific was translated.
// When cfg.Conditional is set and nothing was translated, out is
// lines unchanged.
func Preprocess(lines []charstream.Line, cfg Config, fetcher preproc.LibraryFetcher, sink *diag.Sink) ([]preproc.ReplacedLine, []preproc.Statement, bool) {
	return preprocess(lines, cfg, fetcher, sink, false)
}

func preprocess(lines []charstream.Line, cfg Config, fetcher preproc.LibraryFetcher, sink *diag.Sink, nestedInclude bool) ([]preproc.ReplacedLine, []preproc.Statement, bool) {
	logical := preproc.SegmentLogicalLines(lines, 0, logline.DefaultRegime())

	var out []preproc.ReplacedLine
	var stmts []preproc.Statement
	translated := false

	for _, ll := range logical {
		text := string(ll.Text())
		trimmed := strings.TrimRight(text, " \t")
		originLine := ll.Segments[0].LineNumber

		switch {
		case reExecSQL.MatchString(trimmed):
			loc := reExecSQL.FindStringSubmatchIndex(trimmed)
			label := trimmed[loc[2]:loc[3]]
			body := strings.TrimSpace(trimmed[loc[6]:loc[7]])
			labelRange := preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[2], End: loc[3]})
			instrRange := preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[4], End: loc[5]})
			remarkRanges := preproc.TrailingRemarkRanges(ll, trimmed, preproc.FieldIndexRange{Start: loc[7], End: len(trimmed)})
			if inc := reInclude.FindStringSubmatch(body); inc != nil {
				translated = true
				rep, stmt := includeStatement(ll, originLine, labelRange, instrRange, remarkRanges, inc[1], fetcher, sink, nestedInclude)
				out = append(out, rep...)
				stmts = append(stmts, stmt)
				continue
			}
			translated = true
			rep, stmt := execSQLStatement(ll, originLine, label, body, labelRange, instrRange, remarkRanges)
			out = append(out, rep...)
			stmts = append(stmts, stmt)

		case reSQLType.MatchString(trimmed):
			loc := reSQLType.FindStringSubmatchIndex(trimmed)
			label := trimmed[loc[2]:loc[3]]
			spec := strings.TrimSpace(trimmed[loc[6]:loc[7]])
			labelRange := preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[2], End: loc[3]})
			instrRange := preproc.TextRange(ll, preproc.FieldIndexRange{Start: loc[4], End: loc[5]})
			remarkRanges := preproc.TrailingRemarkRanges(ll, trimmed, preproc.FieldIndexRange{Start: loc[7], End: len(trimmed)})
			translated = true
			rep, stmt, ok := sqlTypeStatement(ll, originLine, label, spec, labelRange, instrRange, remarkRanges)
			if !ok {
				sink.Addf(diag.CodeDB2BadTypeSpec, diag.SeverityError, ll.RangeOf(ll.Begin(), ll.End()), "unsupported SQL TYPE IS specification %q", spec)
			}
			out = append(out, rep...)
			stmts = append(stmts, stmt)

		case isTopLevelEnd(trimmed):
			out = append(out, preproc.ReplacedLine{Text: text, OriginalLine: originLine})
			if cfg.Enabled {
				// A bare END is not itself a DB2 construct: it does not
				// mark the document as translated, so conditional mode
				// can still return the input unchanged.
				out = append(out, endSkeleton(cfg.VersionString, originLine)...)
			}

		default:
			out = append(out, preproc.ReplacedLine{Text: text, OriginalLine: originLine})
		}
	}

	if cfg.Conditional && !translated {
		out = out[:0]
		for _, ll := range logical {
			out = append(out, preproc.ReplacedLine{Text: string(ll.Text()), OriginalLine: ll.Segments[0].LineNumber})
		}
	}

	return out, stmts, translated
}

func isTopLevelEnd(line string) bool {
	fields := strings.Fields(line)
	return len(fields) == 1 && strings.EqualFold(fields[0], "END")
}

// execSQLStatement builds the mock code sequence for a translated
// EXEC SQL statement: a fixed BRAS/DC/MVC/LA/BALR skeleton, skipped
// for statements in the no-code-gen set. Host-variable references
// (identifiers after ':') are collected with ranges mapped back to
// the original document.
func execSQLStatement(ll *logline.Line, originLine int, label, body string, labelRange, instrRange diag.Range, remarkRanges []diag.Range) ([]preproc.ReplacedLine, preproc.Statement) {
	stmt := preproc.Statement{
		StmtRange:        ll.RangeOf(ll.Begin(), ll.End()),
		LabelRange:       labelRange,
		InstructionRange: instrRange,
		RemarkRanges:     remarkRanges,
	}

	var out []preproc.ReplacedLine
	if !noCodeGen.MatchString(body) {
		hostVars := extractHostVars(ll)
		for _, hv := range hostVars {
			stmt.OperandRanges = append(stmt.OperandRanges, hv.Range)
		}
		out = append(out, mockCodeSkeleton(label, len(hostVars), originLine)...)
	} else {
		out = append(out, preproc.ReplacedLine{Text: "***$$$\n", OriginalLine: originLine})
	}
	return out, stmt
}

type hostVar struct {
	Name  string
	Range diag.Range
}

// extractHostVars scans the logical line's flattened code for
// ':identifier' references, respecting quoted strings and '--'
// end-of-line comments.
func extractHostVars(ll *logline.Line) []hostVar {
	runes := ll.Text()
	positions := ll.Positions()
	var vars []hostVar
	inString := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inString:
			if r == '\'' {
				inString = false
			}
		case r == '\'':
			inString = true
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			i = len(runes)
		case r == ':':
			j := i + 1
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
			if j > i+1 {
				name := string(runes[i+1 : j])
				start := positions[i+1]
				end := positions[j-1]
				vars = append(vars, hostVar{
					Name: name,
					Range: diag.Range{
						Start: ll.CodePosition(start.Segment, start.Column),
						End:   ll.CodePosition(end.Segment, end.Column+1),
					},
				})
				i = j - 1
			}
		}
	}
	return vars
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func mockCodeSkeleton(label string, inParams, originLine int) []preproc.ReplacedLine {
	lines := []string{
		"BRAS  15,*+56",
		"DC    H'0',X'0000',H'0'",
		"MVC   SQLPLLEN(24),0(15)",
		"LA    15,SQLCA",
		"ST    15,SQLCODEP",
	}
	if inParams == 0 {
		lines = append(lines, "MVC   SQLVPARM,=XL4'00000000'")
	} else {
		lines = append(lines, "LA    14,SQLPVARS")
	}
	lines = append(lines, "L     15,=V(DSNHLI)", "BALR  14,15")

	out := make([]preproc.ReplacedLine, len(lines))
	for i, text := range lines {
		prefix := "         "
		if i == 0 && label != "" {
			prefix = padLabel(label)
		}
		out[i] = preproc.ReplacedLine{Text: prefix + text + "\n", OriginalLine: originLine}
	}
	return out
}

func padLabel(label string) string {
	if len(label) >= 9 {
		return label + " "
	}
	return label + strings.Repeat(" ", 9-len(label))
}

// includeStatement emits SQLCA/SQLDA skeletons for those two names,
// or fetches the named member via fetcher. Nested includes are
// rejected with CodeDB2NestedInclude.
func includeStatement(ll *logline.Line, originLine int, labelRange, instrRange diag.Range, remarkRanges []diag.Range, name string, fetcher preproc.LibraryFetcher, sink *diag.Sink, nested bool) ([]preproc.ReplacedLine, preproc.Statement) {
	stmt := preproc.Statement{
		StmtRange:        ll.RangeOf(ll.Begin(), ll.End()),
		LabelRange:       labelRange,
		InstructionRange: instrRange,
		RemarkRanges:     remarkRanges,
		IsInclude:        true,
	}
	upper := strings.ToUpper(name)

	if nested {
		sink.Addf(diag.CodeDB2NestedInclude, diag.SeverityError, stmt.StmtRange, "nested EXEC SQL INCLUDE %q", name)
		return nil, stmt
	}

	switch upper {
	case "SQLCA":
		return sqlcaSkeleton(originLine), stmt
	case "SQLDA":
		return sqldaSkeleton(originLine), stmt
	}

	text, line, ok := fetcher.Fetch(name)
	if !ok {
		sink.Addf(diag.CodeDB2IncludeMiss, diag.SeverityError, stmt.StmtRange, "EXEC SQL INCLUDE member %q not found", name)
		return nil, stmt
	}
	memberLines := []charstream.Line{}
	for _, raw := range strings.Split(text, "\n") {
		memberLines = append(memberLines, charstream.DecodeLine([]byte(raw), charstream.EOLLF))
	}
	out, _, _ := preprocess(memberLines, Config{Enabled: true}, preproc.NoFetcher{}, sink, true)
	for i := range out {
		out[i].OriginalLine = line
	}
	return out, stmt
}

func sqlcaSkeleton(originLine int) []preproc.ReplacedLine {
	lines := []string{
		"SQLCA    DSECT",
		"SQLCAID  DS    CL8      EYE CATCHER",
		"SQLCABC  DS    F        SQLCA SIZE",
		"SQLCODE  DS    F        RETURN CODE",
		"SQLERRML DS    H        ERROR MSG LEN",
		"SQLERRMC DS    CL70     ERROR MSG TEXT",
		"SQLERRP  DS    CL8      IMPL INFO",
		"SQLERRD  DS    6F       DIAGNOSTIC INFO",
		"SQLWARN  DS    0CL8     WARNING FLAGS",
		"SQLWARN0 DS    CL1",
		"SQLWARN1 DS    CL1",
		"SQLEXT   DS    CL8      EXT WARNING FLAGS",
	}
	return skeletonLines(lines, originLine)
}

func sqldaSkeleton(originLine int) []preproc.ReplacedLine {
	lines := []string{
		"SQLDA    DSECT",
		"SQLDAID  DS    CL8      EYE CATCHER",
		"SQLDABC  DS    F        SQLDA SIZE",
		"SQLN     DS    H        NUMBER OF ENTRIES",
		"SQLD     DS    H        NUMBER USED",
		"SQLVAR   DS    0F       VARIABLE LIST",
	}
	return skeletonLines(lines, originLine)
}

func skeletonLines(lines []string, originLine int) []preproc.ReplacedLine {
	out := make([]preproc.ReplacedLine, len(lines))
	for i, l := range lines {
		out[i] = preproc.ReplacedLine{Text: l + "\n", OriginalLine: originLine}
	}
	return out
}

// sqlTypeStatement substitutes a DS sequence implementing the
// requested host-variable layout. Recognized forms are LOB variants,
// XML AS, RESULT_SET_LOCATOR VARYING, ROWID, and TABLE LIKE ... AS
// LOCATOR.
func sqlTypeStatement(ll *logline.Line, originLine int, label, spec string, labelRange, instrRange diag.Range, remarkRanges []diag.Range) ([]preproc.ReplacedLine, preproc.Statement, bool) {
	stmt := preproc.Statement{
		StmtRange:        ll.RangeOf(ll.Begin(), ll.End()),
		LabelRange:       labelRange,
		InstructionRange: instrRange,
		RemarkRanges:     remarkRanges,
	}
	upper := strings.ToUpper(spec)
	name := label
	if name == "" {
		name = " "
	}

	var dsType string
	switch {
	case strings.Contains(upper, "RESULT_SET_LOCATOR") && strings.Contains(upper, "VARYING"):
		dsType = "D"
	case strings.HasPrefix(upper, "ROWID"):
		dsType = "FL40"
	case strings.Contains(upper, "XML AS"):
		dsType = "CL32767"
	case strings.Contains(upper, "TABLE LIKE") && strings.Contains(upper, "AS LOCATOR"):
		dsType = "F"
	case strings.HasPrefix(upper, "BLOB") || strings.HasPrefix(upper, "CLOB") || strings.HasPrefix(upper, "DBCLOB"):
		dsType = "FL4"
	default:
		return nil, stmt, false
	}

	line := padLabel(name) + "DS    " + dsType + "\n"
	return []preproc.ReplacedLine{{Text: line, OriginalLine: originLine}}, stmt, true
}

// endSkeleton appends the SQLDSECT working-storage block plus, when a
// version string is configured, a SQLVERS block split into <=32-char
// chunks.
func endSkeleton(versionString string, originLine int) []preproc.ReplacedLine {
	lines := []string{
		"SQLDSECT DSECT",
		"SQLCODEP DS    A         CODE POINTER",
		"SQLDSIZ  DC    A(SQLDLEN) SQLDSECT SIZE",
		"SQLDLEN  EQU   *-SQLDSECT",
	}
	if versionString != "" {
		for i, c := range chunkString(versionString, 32) {
			name := "SQLVERS"
			if i > 0 {
				name = ""
			}
			lines = append(lines, padLabel(name)+"DC    CL32'"+c+"'")
		}
	}
	return skeletonLines(lines, originLine)
}

func chunkString(s string, n int) []string {
	var out []string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	out = append(out, s)
	return out
}
