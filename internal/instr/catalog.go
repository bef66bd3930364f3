// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package instr implements the static instruction/mnemonic catalog:
// four name-sorted arrays (CA, assembler, machine, mnemonic) built at
// init time and searched by binary search. Sorted arrays rather than
// a hash map keep pointer stability for mnemonic base references and
// let the sort invariant be checked at startup.
package instr

import "sort"

// Class identifies which of the four catalog partitions an
// instruction belongs to.
type Class int

const (
	ClassCA Class = iota
	ClassAssembler
	ClassMachine
	ClassMnemonic
)

func (c Class) String() string {
	switch c {
	case ClassCA:
		return "CA"
	case ClassAssembler:
		return "assembler"
	case ClassMachine:
		return "machine"
	case ClassMnemonic:
		return "mnemonic"
	default:
		return "unknown"
	}
}

// OperandSlotKind describes one fixed operand slot's expected shape in
// a machine-instruction operand format.
type OperandSlotKind int

const (
	SlotRegister OperandSlotKind = iota
	SlotMask
	SlotImmediate
	SlotAddress
	SlotLength
)

// OperandFormat describes how many operands an entry accepts and, for
// machine instructions, the fixed shape of each slot. Assembler and CA
// entries are variadic and use only Min/Max (Max == -1 meaning
// unbounded).
type OperandFormat struct {
	Slots    []OperandSlotKind
	Min, Max int
}

// Binding is a pre-bound (operand_index, fixed_value) pair a mnemonic
// applies to its base instruction before the operand parser sees the
// user-supplied operands.
type Binding struct {
	OperandIndex int
	FixedValue   string
}

// Instruction is one catalog entry: a CA instruction, an assembler
// directive, a machine instruction, or a mnemonic alias of one.
type Instruction struct {
	Name    string
	Class   Class
	Arch    ArchSet
	Format  OperandFormat
	Base    *Instruction // non-nil only for Class == ClassMnemonic
	Binds   []Binding
}

// The four static tables. Each must be kept sorted by Name; init
// verifies the invariant and panics (an internal assertion failure,
// never a user diagnostic) if it is violated.
var (
	caTable = []Instruction{
		{Name: "ACTR", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "AEJECT", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "AGO", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "AIF", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 2, Max: 2}},
		{Name: "ANOP", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "AREAD", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "ASPACE", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "GBLA", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "GBLB", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "GBLC", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "LCLA", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "LCLB", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "LCLC", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "MACRO", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "MEND", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "MEXIT", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "MHELP", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "SETA", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "SETB", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "SETC", Class: ClassCA, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
	}

	assemblerTable = []Instruction{
		{Name: "ALIAS", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "AMODE", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "CCW", Class: ClassAssembler, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Min: 4, Max: 4}},
		{Name: "CNOP", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 2, Max: 2}},
		{Name: "COM", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "COPY", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "CSECT", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "DC", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "DROP", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: -1}},
		{Name: "DS", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "DSECT", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "EJECT", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "END", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 2}},
		{Name: "ENTRY", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "EQU", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 5}},
		{Name: "EXTRN", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "ICTL", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 3}},
		{Name: "ISEQ", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 2}},
		{Name: "LTORG", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "MNOTE", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 2}},
		{Name: "OPSYN", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "ORG", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 3}},
		{Name: "POP", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "PRINT", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "PUNCH", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "PUSH", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "RMODE", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "RSECT", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 0}},
		{Name: "SPACE", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "START", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 0, Max: 1}},
		{Name: "TITLE", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: 1}},
		{Name: "USING", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 2, Max: -1}},
		{Name: "WXTRN", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
		{Name: "XATTR", Class: ClassAssembler, Arch: Unknown, Format: OperandFormat{Min: 1, Max: -1}},
	}

	machineTable = []Instruction{
		{Name: "A", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "AG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "AGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "AH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "AL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "ALG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "ALGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "ALR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "AR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "BAL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "BALR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "BAS", Class: ClassMachine, Arch: archSet(XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "BASR", Class: ClassMachine, Arch: archSet(XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "BC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotMask, SlotAddress}, Min: 2, Max: 2}},
		{Name: "BCR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotMask, SlotRegister}, Min: 2, Max: 2}},
		{Name: "BCT", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "BCTR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "BRAS", Class: ClassMachine, Arch: archSet(XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "BRC", Class: ClassMachine, Arch: archSet(ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotMask, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "BRCT", Class: ClassMachine, Arch: archSet(ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "C", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "CH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CHHSI", Class: ClassMachine, Arch: archSet(Z4), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "CL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CLC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CLCL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "CLCLE", Class: ClassMachine, Arch: archSet(ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "CLG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CLGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "CLI", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "CLR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "CR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "CS", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "CVB", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "CVD", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "D", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "DR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "EX", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "IC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "L", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LA", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LAY", Class: ClassMachine, Arch: archSet(Z2), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LCR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LGF", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LLGF", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LLGT", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LM", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "LMG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "LNR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LPR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LT", Class: ClassMachine, Arch: archSet(Z4), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "LTGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "LTR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "M", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "MH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "MR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "MVC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "MVCL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "MVCLE", Class: ClassMachine, Arch: archSet(ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "MVHI", Class: ClassMachine, Arch: archSet(Z4), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "MVI", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "MVN", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "MVZ", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "N", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "NC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "NG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "NGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "NI", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "NR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "O", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "OC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "OG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "OGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "OI", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "OR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "S", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "SH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLA", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLAG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "SLDA", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLDL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "SLL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SLLG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "SLR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "SR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "SRA", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SRAG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "SRDA", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SRDL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SRL", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "SRLG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "ST", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "STC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "STG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "STH", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "STM", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "STMG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister, SlotAddress}, Min: 3, Max: 3}},
		{Name: "SVC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotImmediate}, Min: 1, Max: 1}},
		{Name: "TM", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "TR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "TRT", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "X", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "XC", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotAddress}, Min: 2, Max: 2}},
		{Name: "XG", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotAddress}, Min: 2, Max: 2}},
		{Name: "XGR", Class: ClassMachine, Arch: archSet(Z1), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
		{Name: "XI", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotAddress, SlotImmediate}, Min: 2, Max: 2}},
		{Name: "XR", Class: ClassMachine, Arch: archSet(UNI, DOS, Arch370, XA, ESA), Format: OperandFormat{Slots: []OperandSlotKind{SlotRegister, SlotRegister}, Min: 2, Max: 2}},
	}

	// mnemonicTable entries name their base instruction by string;
	// init joins each to its machineTable entry and derives the free
	// operand format left after the pre-bound slots.
	mnemonicTable = []mnemonicSeed{
		{Name: "B", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "15"}}},
		{Name: "BE", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "8"}}},
		{Name: "BER", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "8"}}},
		{Name: "BH", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "2"}}},
		{Name: "BHR", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "2"}}},
		{Name: "BL", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "4"}}},
		{Name: "BLR", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "4"}}},
		{Name: "BM", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "4"}}},
		{Name: "BNE", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "7"}}},
		{Name: "BNER", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "7"}}},
		{Name: "BNH", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "13"}}},
		{Name: "BNL", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "11"}}},
		{Name: "BNM", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "11"}}},
		{Name: "BNO", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "14"}}},
		{Name: "BNP", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "13"}}},
		{Name: "BNZ", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "7"}}},
		{Name: "BO", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "1"}}},
		{Name: "BP", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "2"}}},
		{Name: "BR", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "15"}}},
		{Name: "BZ", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "8"}}},
		{Name: "J", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "15"}}},
		{Name: "JE", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "8"}}},
		{Name: "JH", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "2"}}},
		{Name: "JL", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "4"}}},
		{Name: "JNE", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "7"}}},
		{Name: "JNO", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "14"}}},
		{Name: "JNOP", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "0"}}},
		{Name: "JNZ", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "7"}}},
		{Name: "JO", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "1"}}},
		{Name: "JZ", BaseName: "BRC", Arch: archSet(ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "8"}}},
		{Name: "NOP", BaseName: "BC", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "0"}}},
		{Name: "NOPR", BaseName: "BCR", Arch: archSet(UNI, DOS, Arch370, XA, ESA), Binds: []Binding{{OperandIndex: 0, FixedValue: "0"}}},
	}
)

// mnemonicSeed is the pre-resolution form of a mnemonic table row: it
// names its base instruction by string the way a source table would,
// before init() turns the name into a pointer.
type mnemonicSeed struct {
	Name     string
	BaseName string
	Arch     ArchSet
	Binds    []Binding
}

var (
	resolvedMnemonics []Instruction
)

func init() {
	byName := make(map[string]*Instruction, len(machineTable))
	for i := range machineTable {
		byName[machineTable[i].Name] = &machineTable[i]
	}

	resolvedMnemonics = make([]Instruction, len(mnemonicTable))
	for i, seed := range mnemonicTable {
		base, ok := byName[seed.BaseName]
		if !ok {
			panic("instr: mnemonic " + seed.Name + " references unknown base instruction " + seed.BaseName)
		}
		resolvedMnemonics[i] = Instruction{
			Name:  seed.Name,
			Class: ClassMnemonic,
			Arch:  seed.Arch,
			Format: OperandFormat{
				Slots: base.Format.Slots[1:],
				Min:   base.Format.Min - 1,
				Max:   maxMinusOne(base.Format.Max),
			},
			Base:  base,
			Binds: seed.Binds,
		}
	}

	checkSorted(ClassCA, caTable)
	checkSorted(ClassAssembler, assemblerTable)
	checkSorted(ClassMachine, machineTable)
	checkSorted(ClassMnemonic, resolvedMnemonics)
}

func maxMinusOne(max int) int {
	if max < 0 {
		return max
	}
	return max - 1
}

func checkSorted(class Class, table []Instruction) {
	if !sort.SliceIsSorted(table, func(i, j int) bool { return table[i].Name < table[j].Name }) {
		panic("instr: " + class.String() + " table is not sorted by name")
	}
}

func tableFor(class Class) []Instruction {
	switch class {
	case ClassCA:
		return caTable
	case ClassAssembler:
		return assemblerTable
	case ClassMachine:
		return machineTable
	case ClassMnemonic:
		return resolvedMnemonics
	default:
		return nil
	}
}

// Lookup finds the named entry within class by binary search.
func Lookup(class Class, name string) (*Instruction, bool) {
	table := tableFor(class)
	i := sort.Search(len(table), func(i int) bool { return table[i].Name >= name })
	if i < len(table) && table[i].Name == name {
		return &table[i], true
	}
	return nil, false
}

// LookupAny searches all four classes in CA, assembler, machine,
// mnemonic order and returns the first match, for callers (such as
// cmd/hlasmcore's catalog lookup) that only know a bare
// instruction-field name and must discover its class.
func LookupAny(name string) (*Instruction, bool) {
	for _, c := range []Class{ClassCA, ClassAssembler, ClassMachine, ClassMnemonic} {
		if inst, ok := Lookup(c, name); ok {
			return inst, true
		}
	}
	return nil, false
}

// LookupAnyAvailable behaves like LookupAny but additionally requires
// the match to be available on the active architecture. An entry that
// exists but is unavailable is reported exactly as an unknown name, so
// a caller that already falls back to treating an unrecognized
// mnemonic as a macro call needs no separate architecture branch.
func LookupAnyAvailable(name string, active Architecture) (*Instruction, bool) {
	inst, ok := LookupAny(name)
	if !ok || !Available(inst, active) {
		return nil, false
	}
	return inst, true
}

// Available reports whether inst's architecture bitset permits active.
// Filtering happens per call rather than via a per-architecture cached
// copy of the tables: every caller already knows its active
// architecture and the bitset test is cheap.
func Available(inst *Instruction, active Architecture) bool {
	return inst.Arch.Contains(active)
}
