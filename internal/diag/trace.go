package diag

import (
	"fmt"
	"io"
	"strings"
)

// Trace is an optional, verbose-only tracing sink: a cheap
// conditional fmt.Fprintf gated by a bool. A nil Trace is a valid,
// silent no-op.
type Trace struct {
	w       io.Writer
	enabled bool
}

// NewTrace returns a Trace that writes to w when enabled is true, and
// is a silent no-op otherwise.
func NewTrace(w io.Writer, enabled bool) *Trace {
	return &Trace{w: w, enabled: enabled}
}

// Enabled reports whether tracing is active.
func (t *Trace) Enabled() bool {
	return t != nil && t.enabled
}

// Section prints a banner around a named phase of processing.
func (t *Trace) Section(name string) {
	if !t.Enabled() {
		return
	}
	bar := strings.Repeat("-", len(name)+6)
	fmt.Fprintln(t.w, bar)
	fmt.Fprintf(t.w, "-- %s --\n", name)
	fmt.Fprintln(t.w, bar)
}

// Linef prints one trace line.
func (t *Trace) Linef(format string, args ...interface{}) {
	if !t.Enabled() {
		return
	}
	fmt.Fprintf(t.w, format, args...)
	fmt.Fprintln(t.w)
}

// Bytesf prints a run of bytes in three-per-line hex groups.
func (t *Trace) Bytesf(addr int, b []byte) {
	if !t.Enabled() {
		return
	}
	for i, n := 0, len(b); i < n; i += 3 {
		j := i + 3
		if j > n {
			j = n
		}
		t.Linef("%04X-*% X", addr+i, b[i:j])
	}
}
