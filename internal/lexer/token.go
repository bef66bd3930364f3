// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lexer implements the filtered token stream produced over
// one logical line: a pull-based tokenizer with a hidden channel for
// continuation and ignore-area tokens, so parsers see only code
// tokens while range recovery can still walk the full vector.
package lexer

import "github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/diag"

// Kind identifies a token's lexical category.
type Kind int

// Token kinds.
const (
	ORDSYMBOL Kind = iota
	NUM
	IDENTIFIER
	SPACE
	COMMA
	LPAR
	RPAR
	DOT
	ASTERISK
	SLASH
	MINUS
	PLUS
	EQUALS
	LT
	GT
	APOSTROPHE
	ATTR
	AMPERSAND
	VERTICAL
	CONTINUATION
	IGNORED
	PROCESS
	EOF
)

var kindNames = map[Kind]string{
	ORDSYMBOL: "ORDSYMBOL", NUM: "NUM", IDENTIFIER: "IDENTIFIER",
	SPACE: "SPACE", COMMA: "COMMA", LPAR: "LPAR", RPAR: "RPAR", DOT: "DOT",
	ASTERISK: "ASTERISK", SLASH: "SLASH", MINUS: "MINUS", PLUS: "PLUS",
	EQUALS: "EQUALS", LT: "LT", GT: "GT", APOSTROPHE: "APOSTROPHE",
	ATTR: "ATTR", AMPERSAND: "AMPERSAND", VERTICAL: "VERTICAL",
	CONTINUATION: "CONTINUATION", IGNORED: "IGNORED", PROCESS: "PROCESS",
	EOF: "EOF",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// Channel distinguishes tokens visible to the parser (default) from
// tokens kept only for range recovery (hidden).
type Channel int

// Channels.
const (
	ChannelDefault Channel = iota
	ChannelHidden
)

// Token is one lexical unit produced from a logical line.
type Token struct {
	Kind    Kind
	Channel Channel
	Text    string
	Range   diag.Range
	Index   int // identity: this token's position in the append-only token vector
}

// IsHidden reports whether the token is on the hidden channel.
func (t Token) IsHidden() bool { return t.Channel == ChannelHidden }
