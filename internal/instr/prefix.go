package instr

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// mnemonicTree is a secondary, non-authoritative completion index
// over every catalog entry's name across all four classes: a prefix
// tree for "complete as you type" lookups, layered over data that the
// catalog itself keeps sorted and binary-searched for authoritative
// lookup. The tree never substitutes for Lookup.
var mnemonicTree = prefixtree.New[*Instruction]()

func init() {
	for _, table := range [][]Instruction{caTable, assemblerTable, machineTable} {
		for i := range table {
			mnemonicTree.Add(strings.ToLower(table[i].Name), &table[i])
		}
	}
	for i := range resolvedMnemonics {
		mnemonicTree.Add(strings.ToLower(resolvedMnemonics[i].Name), &resolvedMnemonics[i])
	}
}

// Complete returns the unique catalog entry whose name has prefix as
// an unambiguous prefix. It returns false if no entry or more than
// one entry matches.
func Complete(prefix string) (*Instruction, bool) {
	inst, err := mnemonicTree.FindValue(strings.ToLower(prefix))
	if err != nil {
		return nil, false
	}
	return inst, true
}
