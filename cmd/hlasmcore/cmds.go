// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree("hlasmcore")
	root.AddCommand(cmd.Command{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*App).cmdHelp,
	})

	root.AddCommand(cmd.Command{
		Name:  "tokenize",
		Brief: "Tokenize a source file and print its token stream",
		Description: "Read the named file, segment it into" +
			" logical lines under the active ICTL regime, lex each one" +
			" and print every non-hidden token with its source range.",
		Usage: "tokenize <filename>",
		Data:  (*App).cmdTokenize,
	})

	root.AddCommand(cmd.Command{
		Name:  "parse",
		Brief: "Field-split and operand-parse a source file",
		Description: "Read the named file, split each logical line into" +
			" label/instruction/operand/remark fields, dispatch the" +
			" operand field to the grammar the instruction field's" +
			" catalog class selects, and print the resulting statement" +
			" shape plus any diagnostics.",
		Usage: "parse <filename>",
		Data:  (*App).cmdParse,
	})

	pre := cmd.NewTree("Preprocess")
	root.AddCommand(cmd.Command{
		Name:    "preprocess",
		Brief:   "Preprocessor commands",
		Subtree: pre,
	})
	pre.AddCommand(cmd.Command{
		Name:  "db2",
		Brief: "Run the DB2 EXEC SQL preprocessor over a file",
		Usage: "preprocess db2 <filename>",
		Data:  (*App).cmdPreprocessDB2,
	})
	pre.AddCommand(cmd.Command{
		Name:  "cics",
		Brief: "Run the CICS EXEC preprocessor over a file",
		Usage: "preprocess cics <filename>",
		Data:  (*App).cmdPreprocessCICS,
	})

	cat := cmd.NewTree("Catalog")
	root.AddCommand(cmd.Command{
		Name:    "catalog",
		Brief:   "Instruction catalog commands",
		Subtree: cat,
	})
	cat.AddCommand(cmd.Command{
		Name:  "lookup",
		Brief: "Look up an instruction or mnemonic by exact name",
		Usage: "catalog lookup <name>",
		Data:  (*App).cmdCatalogLookup,
	})
	cat.AddCommand(cmd.Command{
		Name:  "complete",
		Brief: "Complete an instruction or mnemonic by unambiguous prefix",
		Usage: "catalog complete <prefix>",
		Data:  (*App).cmdCatalogComplete,
	})

	root.AddCommand(cmd.Command{
		Name:  "set",
		Brief: "Set a configuration field",
		Description: "Set a configuration field (systemarchitecture," +
			" goff, db2enabled, db2conditional, db2versionstring," +
			" cicsenabled, cicsprolog, cicsepilog, cicsleasm), resolved" +
			" by unambiguous name prefix.",
		Usage: "set <field> <value>",
		Data:  (*App).cmdSet,
	})
	root.AddCommand(cmd.Command{
		Name:  "show",
		Brief: "Show the current configuration",
		Usage: "show",
		Data:  (*App).cmdShow,
	})
	root.AddCommand(cmd.Command{
		Name:      "trace",
		Brief:     "Toggle verbose phase tracing",
		Usage:     "trace on|off",
		Shortcuts: []string{"verbose"},
		Data:      (*App).cmdTrace,
	})
	root.AddCommand(cmd.Command{
		Name:      "quit",
		Brief:     "Quit hlasmcore",
		Usage:     "quit",
		Shortcuts: []string{"exit", "bye"},
		Data:      (*App).cmdQuit,
	})

	cmds = root
}
