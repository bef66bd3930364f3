// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the host-visible options — system
// architecture, GOFF mode, and the DB2/CICS preprocessor settings —
// as a single reflect-addressable struct looked up by unambiguous
// name prefix. A field whose underlying type is an enum
// (SystemArchitecture) is set by name rather than by a bare type
// conversion.
package config

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
)

// Config is the full set of host-configurable options.
type Config struct {
	SystemArchitecture instr.Architecture `doc:"active system architecture filtering the instruction catalog"`
	GOFF               bool               `doc:"GOFF mode, affects data-definition type R normalization"`
	DB2Enabled         bool               `doc:"enable the DB2 EXEC SQL preprocessor"`
	DB2Conditional     bool               `doc:"DB2 preprocessor conditional (translate-only-recognized-forms) mode"`
	DB2VersionString   string             `doc:"DB2 version string emitted as the SQLVERS block at END"`
	CICSEnabled        bool               `doc:"enable the CICS EXEC preprocessor"`
	CICSProlog         bool               `doc:"emit the CICS DFHEIENT prolog"`
	CICSEpilog         bool               `doc:"emit the CICS DFHEIRET/DFHEISTG/DFHEIEND epilog"`
	CICSLeasm          bool               `doc:"use the LE-assembler CICS global vector"`
}

// New returns a Config with the defaults: UNI architecture, GOFF off,
// both preprocessors disabled.
func New() *Config {
	return &Config{SystemArchitecture: instr.UNI}
}

// field is one reflected Config field, recorded for name-based
// lookup.
type field struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	fieldTree   = prefixtree.New[*field]()
	fieldsTable []field

	archType = reflect.TypeOf(instr.UNI)
)

func init() {
	t := reflect.TypeOf(Config{})
	fieldsTable = make([]field, t.NumField())
	for i := 0; i < len(fieldsTable); i++ {
		f := t.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		fieldsTable[i] = field{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		fieldTree.Add(strings.ToLower(f.Name), &fieldsTable[i])
	}
}

// Display writes every field's current value and doc string to w, in
// declaration order.
func (c *Config) Display(w io.Writer) {
	v := reflect.ValueOf(c).Elem()
	for _, f := range fieldsTable {
		val := v.Field(f.index)
		var rendered string
		switch {
		case f.typ == archType:
			rendered = instr.Architecture(val.Int()).String()
		case f.kind == reflect.String:
			rendered = fmt.Sprintf("%q", val.String())
		default:
			rendered = fmt.Sprintf("%v", val.Interface())
		}
		fmt.Fprintf(w, "    %-20s %-10s (%s)\n", f.name, rendered, f.doc)
	}
}

// Kind reports the reflect.Kind backing the field key names by
// unambiguous prefix, or reflect.Invalid if no field matches.
func (c *Config) Kind(key string) reflect.Kind {
	f, err := fieldTree.FindValue(strings.ToLower(key))
	if err != nil {
		return reflect.Invalid
	}
	return f.kind
}

// Set assigns value to the field key names, resolved by unambiguous
// prefix the same way prefixtree.Tree resolves abbreviated command
// names elsewhere in this codebase. A string destined for
// SystemArchitecture is resolved by architecture name (UNI, DOS, 370,
// XA, ESA, Z1..Z9); every other field is converted with reflect.
func (c *Config) Set(key string, value any) error {
	f, err := fieldTree.FindValue(strings.ToLower(key))
	if err != nil {
		return err
	}

	v := reflect.ValueOf(c).Elem().Field(f.index)

	if f.typ == archType {
		name, ok := value.(string)
		if !ok {
			return errors.New("config: system architecture must be set by name")
		}
		arch, ok := archByName(name)
		if !ok {
			return fmt.Errorf("config: unknown architecture %q", name)
		}
		v.SetInt(int64(arch))
		return nil
	}

	vIn := reflect.ValueOf(value)
	if (f.kind == reflect.String && vIn.Kind() != reflect.String) ||
		(f.kind != reflect.String && vIn.Kind() == reflect.String) ||
		!vIn.Type().ConvertibleTo(f.typ) {
		return errors.New("config: invalid type for " + f.name)
	}
	v.Set(vIn.Convert(f.typ))
	return nil
}

var archNameTable = map[string]instr.Architecture{
	"UNI": instr.UNI, "DOS": instr.DOS, "370": instr.Arch370,
	"XA": instr.XA, "ESA": instr.ESA,
	"Z1": instr.Z1, "Z2": instr.Z2, "Z3": instr.Z3, "Z4": instr.Z4,
	"Z5": instr.Z5, "Z6": instr.Z6, "Z7": instr.Z7, "Z8": instr.Z8, "Z9": instr.Z9,
}

func archByName(name string) (instr.Architecture, bool) {
	a, ok := archNameTable[strings.ToUpper(name)]
	return a, ok
}
