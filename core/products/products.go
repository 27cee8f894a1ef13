// core/products/products.go
// Product species and their atom bookkeeping.

package products

import (
	"math"
	"sort"

	"detprod-core/formula"
)

// Species names reported by the product models.
const (
	CO    = "CO"
	CO2   = "CO2"
	H2O   = "H2O"
	N2    = "N2"
	Solid = "C(s)"
	O2    = "O2"
	H2    = "H2"
)

// Order is the display order for the known species.
var Order = []string{CO, CO2, H2O, N2, Solid, O2, H2}

// Composition lists the atoms bound in one molecule of each species.
var Composition = map[string]formula.Counts{
	CO:    {"C": 1, "O": 1},
	CO2:   {"C": 1, "O": 2},
	H2O:   {"H": 2, "O": 1},
	N2:    {"N": 2},
	Solid: {"C": 1},
	O2:    {"O": 2},
	H2:    {"H": 2},
}

// Quantities maps species name to moles formed per formula unit.
type Quantities map[string]float64

// Clone returns an independent copy.
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Species returns the keys of q: known species in Order first, then any
// others alphabetically.
func (q Quantities) Species() []string {
	out := make([]string, 0, len(q))
	known := make(map[string]bool, len(Order))
	for _, s := range Order {
		known[s] = true
		if _, ok := q[s]; ok {
			out = append(out, s)
		}
	}
	var rest []string
	for s := range q {
		if !known[s] {
			rest = append(rest, s)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Significant drops entries with |quantity| < eps.
func (q Quantities) Significant(eps float64) Quantities {
	out := make(Quantities, len(q))
	for k, v := range q {
		if math.Abs(v) >= eps {
			out[k] = v
		}
	}
	return out
}

// Negative returns the species with a quantity below -eps, in display order.
func (q Quantities) Negative(eps float64) []string {
	var out []string
	for _, s := range q.Species() {
		if q[s] < -eps {
			out = append(out, s)
		}
	}
	return out
}

// AtomTotals counts the atoms bound in q. Species without a known
// composition are ignored.
func AtomTotals(q Quantities) formula.Counts {
	out := formula.Counts{}
	for name, n := range q {
		comp, ok := Composition[name]
		if !ok {
			continue
		}
		for el, k := range comp {
			out[el] += k * n
		}
	}
	return out
}
