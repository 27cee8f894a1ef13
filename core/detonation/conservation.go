package detonation

import (
	"fmt"
	"math"

	"detprod-core/formula"
	"detprod-core/products"
)

// ConservationError reports an element whose atoms are not accounted for.
type ConservationError struct {
	Phase   int
	Element string
	Want    float64
	Got     float64
}

func (e *ConservationError) Error() string {
	return fmt.Sprintf("atom conservation violated after phase %d: %s want %.12g got %.12g",
		e.Phase, e.Element, e.Want, e.Got)
}

// CheckConservation compares the atoms held by s (products, working pool
// and reserved carbon) with the input pool. tol is relative to the input
// count, with an absolute floor of tol for counts below 1.
func CheckConservation(in Pool, s State, tol float64) error {
	bound := products.AtomTotals(s.Products)
	got := formula.Counts{
		"C": bound["C"] + s.Pool.C + s.Reserve,
		"H": bound["H"] + s.Pool.H,
		"N": bound["N"] + s.Pool.N,
		"O": bound["O"] + s.Pool.O,
	}
	want := formula.Counts{"C": in.C, "H": in.H, "N": in.N, "O": in.O}
	for _, el := range []string{"C", "H", "N", "O"} {
		if math.Abs(got[el]-want[el]) > tol*math.Max(1, math.Abs(want[el])) {
			return &ConservationError{Element: el, Want: want[el], Got: got[el]}
		}
	}
	return nil
}
