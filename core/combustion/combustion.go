// core/combustion/combustion.go
// Complete-oxidation products: every C to CO2, every H to H2O, N to N2.
// The oxygen budget is reported, never enforced.

package combustion

import (
	"detprod-core/formula"
	"detprod-core/products"
)

// Result carries the closed-form products and the oxygen bookkeeping.
// At most one of ExcessO and DeficitO is non-zero.
type Result struct {
	H2O, CO2, N2 float64

	RequiredO  float64 // O atoms needed for full oxidation
	AvailableO float64 // O atoms in the formula
	ExcessO    float64 // AvailableO − RequiredO when positive
	DeficitO   float64 // RequiredO − AvailableO when positive
}

// Products computes the full-oxidation products of c.
func Products(c formula.Counts) Result {
	r := Result{
		H2O:        c.Get("H") / 2,
		CO2:        c.Get("C"),
		N2:         c.Get("N") / 2,
		AvailableO: c.Get("O"),
	}
	r.RequiredO = r.H2O + 2*r.CO2
	switch {
	case r.AvailableO > r.RequiredO:
		r.ExcessO = r.AvailableO - r.RequiredO
	case r.AvailableO < r.RequiredO:
		r.DeficitO = r.RequiredO - r.AvailableO
	}
	return r
}

// Quantities returns the product map. The oxygen balance stays in ExcessO
// and DeficitO and is never counted as product gas.
func (r Result) Quantities() products.Quantities {
	return products.Quantities{
		products.H2O: r.H2O,
		products.CO2: r.CO2,
		products.N2:  r.N2,
	}
}
