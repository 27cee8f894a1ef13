package detonation

import (
	"math"

	"detprod-core/products"
)

// Phase is one step of the apportionment. Apply receives a private copy of
// the state and returns the updated state. When Guard is set and reports
// false the phase is skipped and the state passes through untouched.
type Phase struct {
	Index int
	Name  string
	Guard func(State) bool
	Apply func(State) State
}

// Phases returns the fixed reaction order.
func Phases() []Phase {
	return []Phase{
		{Index: 1, Name: "co-formation", Apply: formCO},
		{Index: 2, Name: "nitrogen-pairing", Apply: pairNitrogen},
		{Index: 3, Name: "co-disproportionation", Apply: disproportionateCO},
		{Index: 4, Name: "water-gas-reduction", Apply: reduceWithHydrogen},
		{Index: 5, Name: "residual-oxygen", Guard: oxygenLeft, Apply: burnResidual},
	}
}

func formCO(s State) State {
	co := math.Min(s.Pool.C, s.Pool.O)
	s.Pool.C -= co
	s.Pool.O -= co
	s.Products[products.CO] += co
	s.OriginalCO = co
	return s
}

func pairNitrogen(s State) State {
	n2 := s.Pool.N / 2
	s.Pool.N -= n2 * 2
	s.Products[products.N2] += n2
	return s
}

// disproportionateCO: 2 CO → CO2 + C applied to a third of the CO pool.
func disproportionateCO(s State) State {
	converted := s.Products[products.CO] / 3
	s.Products[products.CO2] += converted / 2
	s.Reserve += converted / 2
	s.Products[products.CO] -= converted
	return s
}

// reduceWithHydrogen: CO + H2 → C + H2O for a sixth of the phase-1 CO,
// then returns all reserved carbon to the working pool.
func reduceWithHydrogen(s State) State {
	x := s.OriginalCO / 6
	s.Products[products.H2O] += x
	s.Pool.H -= 2 * x
	s.Reserve += x
	s.Products[products.CO] -= x

	s.Pool.C += s.Reserve
	s.Reserve = 0
	return s
}

func oxygenLeft(s State) bool { return s.Pool.O > 0 }

// burnResidual spends leftover oxygen on C, then H, then CO. The sub-steps
// do not re-check the oxygen budget, so Pool.O may end negative.
func burnResidual(s State) State {
	d := math.Min(s.Pool.C, s.Pool.O)
	s.Pool.C -= d
	s.Pool.O -= d
	s.Products[products.CO] += d

	s.Products[products.H2O] += 0.5 * s.Pool.H
	s.Pool.O -= 0.5 * s.Pool.H
	s.Pool.H = 0

	co := s.Products[products.CO]
	s.Products[products.CO] -= co
	s.Pool.O -= co
	s.Products[products.CO2] += co
	return s
}
