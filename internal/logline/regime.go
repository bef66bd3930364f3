package logline

import "fmt"

// Regime is the ICTL column configuration: begin, end and continue
// are 1-based column numbers.
type Regime struct {
	Begin    int
	End      int
	Continue int
	DBCS     bool
	COPY     bool
}

// DefaultRegime returns the standard (1, 71, 16) column regime.
func DefaultRegime() Regime {
	return Regime{Begin: 1, End: 71, Continue: 16}
}

// NewRegime validates an ICTL operand triple and returns the regime it
// configures. begin must lie in 1..40, end in 41..80, and continue in
// begin+1..40; continue==0 disables continuation, as does end==80. An
// ICTL that omits continue passes 0.
func NewRegime(begin, end, cont int) (Regime, error) {
	if begin < 1 || begin > 40 {
		return Regime{}, fmt.Errorf("logline: ICTL begin column %d outside 1..40", begin)
	}
	if end < 41 || end > 80 {
		return Regime{}, fmt.Errorf("logline: ICTL end column %d outside 41..80", end)
	}
	if cont != 0 && (cont <= begin || cont > 40) {
		return Regime{}, fmt.Errorf("logline: ICTL continue column %d outside %d..40", cont, begin+1)
	}
	return Regime{Begin: begin, End: end, Continue: cont}, nil
}

// ContinuationDisabled reports whether this regime can never produce a
// continuation: continue=0 disables it outright, and end=80 leaves no
// continuation column on the card.
func (r Regime) ContinuationDisabled() bool {
	return r.Continue == 0 || r.End == 80
}

// identificationEnd is the fixed physical end-of-card column; the
// ignore/identification field always runs up to this column
// regardless of where the regime's end column falls.
const identificationEnd = 80

// boundaries returns the 0-based rune-index cut points that divide a
// physical line into its regions:
//
//	[0:codeStart)             begin...code   (ignored prefix)
//	[codeStart:contStart)     code...continuation
//	[contStart:ignoreStart)   continuation...ignore (one column)
//	[ignoreStart:end)         ignore...end
func (r Regime) boundaries() (codeStart, contStart, ignoreStart int) {
	codeStart = r.Begin - 1
	contStart = r.End
	ignoreStart = r.End + 1
	return
}
