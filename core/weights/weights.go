// core/weights/weights.go
package weights

import (
	"errors"
	"fmt"

	"detprod-core/formula"
)

// Table maps element symbols to standard atomic weights (g/mol).
type Table map[string]float64

// ErrMissingWeight is matched by every *MissingWeightError.
var ErrMissingWeight = errors.New("missing atomic weight")

// MissingWeightError reports an element used by a formula that the table lacks.
type MissingWeightError struct {
	Element string
}

func (e *MissingWeightError) Error() string {
	return fmt.Sprintf("%s: %s not in atomic weight table", ErrMissingWeight, e.Element)
}

func (e *MissingWeightError) Unwrap() error { return ErrMissingWeight }

// builtin holds the shipped weights. S is intentionally the historical value
// carried by the screening sheets this tool reproduces.
var builtin = Table{
	"C":  12.011,
	"H":  1.008,
	"N":  14.007,
	"O":  15.999,
	"S":  99.9,
	"Cl": 35.45,
	"Pb": 207.2,
	"Ag": 107.9,
	"K":  39.1,
	"Na": 22.9,
	"Al": 26.982,
	"Mg": 24.305,
}

// Default returns a fresh copy of the built-in table.
func Default() Table { return builtin.Merge(nil) }

// Merge returns a copy of t with overrides applied on top.
func (t Table) Merge(overrides Table) Table {
	out := make(Table, len(t)+len(overrides))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// MolarWeight sums weight·count over every element in c.
// Elements are visited in sorted order so the float sum is reproducible.
func MolarWeight(c formula.Counts, t Table) (float64, error) {
	mw := 0.0
	for _, sym := range c.Symbols() {
		w, ok := t[sym]
		if !ok {
			return 0, &MissingWeightError{Element: sym}
		}
		mw += w * c[sym]
	}
	return mw, nil
}
