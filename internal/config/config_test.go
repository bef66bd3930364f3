package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/BroadcomMFD-DevOps/hlasm-parser-core/internal/instr"
)

func TestNewDefaults(t *testing.T) {
	c := New()
	if c.SystemArchitecture != instr.UNI {
		t.Fatalf("expected UNI default, got %v", c.SystemArchitecture)
	}
	if c.GOFF || c.DB2Enabled || c.CICSEnabled {
		t.Fatalf("expected every bool default off, got %+v", c)
	}
}

func TestSetByNamePrefix(t *testing.T) {
	c := New()
	if err := c.Set("goff", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.GOFF {
		t.Fatal("expected GOFF to be set")
	}
}

func TestSetArchitectureByName(t *testing.T) {
	c := New()
	if err := c.Set("systemarchitecture", "Z3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.SystemArchitecture != instr.Z3 {
		t.Fatalf("expected Z3, got %v", c.SystemArchitecture)
	}
}

func TestSetArchitectureRejectsBareNumber(t *testing.T) {
	c := New()
	if err := c.Set("systemarchitecture", 5); err == nil {
		t.Fatal("expected an error setting architecture from a non-string value")
	}
}

func TestSetUnknownArchitectureName(t *testing.T) {
	c := New()
	if err := c.Set("systemarchitecture", "BOGUS"); err == nil {
		t.Fatal("expected an error for an unknown architecture name")
	}
}

func TestSetUnknownKey(t *testing.T) {
	c := New()
	if err := c.Set("nosuchfield", true); err == nil {
		t.Fatal("expected an error for an unrecognized key")
	}
}

func TestKind(t *testing.T) {
	c := New()
	if c.Kind("db2enabled") != reflect.Bool {
		t.Fatalf("expected reflect.Bool for db2enabled")
	}
	if c.Kind("db2versionstring") != reflect.String {
		t.Fatalf("expected reflect.String for db2versionstring")
	}
}

func TestDisplayIncludesEveryField(t *testing.T) {
	c := New()
	var b strings.Builder
	c.Display(&b)
	out := b.String()
	if !strings.Contains(out, "CICSLeasm") {
		t.Fatalf("expected CICSLeasm in Display output, got %q", out)
	}
	if !strings.Contains(out, "UNI") {
		t.Fatalf("expected the architecture default rendered as UNI, got %q", out)
	}
}
