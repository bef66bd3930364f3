package instr

import "testing"

func TestTablesAreSorted(t *testing.T) {
	for _, class := range []Class{ClassCA, ClassAssembler, ClassMachine, ClassMnemonic} {
		table := tableFor(class)
		for i := 1; i < len(table); i++ {
			if table[i-1].Name >= table[i].Name {
				t.Fatalf("%s table not strictly sorted at %d: %q >= %q", class, i, table[i-1].Name, table[i].Name)
			}
		}
	}
}

func TestLookupFindsKnownNames(t *testing.T) {
	cases := []struct {
		class Class
		name  string
	}{
		{ClassCA, "AIF"},
		{ClassAssembler, "USING"},
		{ClassMachine, "MVC"},
		{ClassMnemonic, "BR"},
	}
	for _, c := range cases {
		inst, ok := Lookup(c.class, c.name)
		if !ok {
			t.Fatalf("Lookup(%s, %q) not found", c.class, c.name)
		}
		if inst.Name != c.name {
			t.Fatalf("Lookup(%s, %q) returned %q", c.class, c.name, inst.Name)
		}
	}
}

func TestLookupReportsAbsentForUnknownNames(t *testing.T) {
	for _, class := range []Class{ClassCA, ClassAssembler, ClassMachine, ClassMnemonic} {
		if _, ok := Lookup(class, "ZZZZNOTAREALNAME"); ok {
			t.Fatalf("Lookup(%s, ...) unexpectedly found a nonexistent name", class)
		}
	}
}

func TestMnemonicBindingResolvesBase(t *testing.T) {
	br, ok := Lookup(ClassMnemonic, "BR")
	if !ok {
		t.Fatalf("BR mnemonic not found")
	}
	if br.Base == nil || br.Base.Name != "BCR" {
		t.Fatalf("expected BR to base off BCR, got %v", br.Base)
	}
	if len(br.Binds) != 1 || br.Binds[0].FixedValue != "15" {
		t.Fatalf("expected BR to pre-bind operand 0 to \"15\", got %v", br.Binds)
	}
	if br.Format.Min != 1 || br.Format.Max != 1 {
		t.Fatalf("expected BR to require exactly one free operand, got min=%d max=%d", br.Format.Min, br.Format.Max)
	}
}

func TestArchitectureSinceFiltering(t *testing.T) {
	stg, ok := Lookup(ClassMachine, "STG")
	if !ok {
		t.Fatalf("STG not found")
	}
	if Available(stg, ESA) {
		t.Fatalf("STG (Z1-only) should not be available on ESA")
	}
	if !Available(stg, Z1) {
		t.Fatalf("STG should be available on Z1")
	}
	if !Available(stg, Z5) {
		t.Fatalf("STG (since Z1) should be available on Z5")
	}
}

func TestArchitectureBitTestedForNonZ(t *testing.T) {
	brasEntry, ok := Lookup(ClassMachine, "BRAS")
	if !ok {
		t.Fatalf("BRAS not found")
	}
	if Available(brasEntry, Arch370) {
		t.Fatalf("BRAS should not be available on 370")
	}
	if !Available(brasEntry, XA) {
		t.Fatalf("BRAS should be available on XA")
	}
}

func TestPreZEntriesCarryForwardToZ(t *testing.T) {
	brasEntry, ok := Lookup(ClassMachine, "BRAS")
	if !ok {
		t.Fatalf("BRAS not found")
	}
	if !Available(brasEntry, Z1) || !Available(brasEntry, Z9) {
		t.Fatalf("an entry naming no Z generation must stay available on Z")
	}
}

func TestUnknownArchAlwaysAvailable(t *testing.T) {
	anop, ok := Lookup(ClassCA, "ANOP")
	if !ok {
		t.Fatalf("ANOP not found")
	}
	if !Available(anop, UNI) || !Available(anop, Z9) {
		t.Fatalf("unknown-support entries must be available on every architecture")
	}
}

func TestLookupAnyAvailableFiltersByArchitecture(t *testing.T) {
	if _, ok := LookupAnyAvailable("STG", ESA); ok {
		t.Fatalf("STG (Z1-only) should not resolve on ESA")
	}
	inst, ok := LookupAnyAvailable("STG", Z1)
	if !ok || inst.Name != "STG" {
		t.Fatalf("expected STG to resolve on Z1, got %+v, %v", inst, ok)
	}
}

func TestLookupAnyAvailableStillReportsUnknownNames(t *testing.T) {
	if _, ok := LookupAnyAvailable("NOSUCHOP", Z9); ok {
		t.Fatalf("expected an unknown name to remain unresolved regardless of architecture")
	}
}

func TestCompleteUnambiguousPrefix(t *testing.T) {
	inst, ok := Complete("bra")
	if !ok || inst.Name != "BRAS" {
		t.Fatalf("expected unambiguous completion of \"bra\" to BRAS, got %v ok=%v", inst, ok)
	}
}
