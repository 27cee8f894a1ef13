// core/detonation/engine.go
// Detonation product apportionment for CHNO compounds.
//
// A fixed reaction order distributes the atoms of one formula unit over
// CO, CO2, H2O, N2, C(s), O2 and H2:
//  1) C + O → CO, limited by the scarcer of the two.
//  2) N pairs to N2 (odd counts give a fractional molecule).
//  3) One third of the CO disproportionates: half to CO2, half to C.
//  4) One sixth of the phase-1 CO reacts with H: C + H2O.
//     The carbon released by 3) and 4) rejoins the working pool.
//  5) Only if O is left: C → CO, all H → H2O, all CO → CO2.
//
// Every step is plain arithmetic; atoms are conserved after each phase.
// This package has no app/output deps.

package detonation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"detprod-core/formula"
	"detprod-core/products"
)

// DefaultTolerance is the relative tolerance used by the conservation check.
const DefaultTolerance = 1e-9

// ErrInvalidCount is returned for negative, NaN or infinite C/H/N/O counts.
var ErrInvalidCount = errors.New("invalid element count")

// Pool is the working element budget of a single apportionment.
type Pool struct {
	C, H, N, O float64
}

// State is what a phase consumes and produces.
type State struct {
	Pool Pool
	// Reserve holds carbon released by phases 3 and 4 until phase 4 merges
	// it back into Pool.C.
	Reserve float64
	// OriginalCO is the CO formed in phase 1; phase 4 is sized from it.
	OriginalCO float64
	Products   products.Quantities
}

func (s State) clone() State {
	s.Products = s.Products.Clone()
	return s
}

// Snapshot records the state after one phase.
type Snapshot struct {
	Phase    int
	Name     string
	Skipped  bool
	Pool     Pool
	Reserve  float64
	Products products.Quantities
}

// Result is the output of Engine.Run.
type Result struct {
	Products  products.Quantities
	Snapshots []Snapshot
}

// Overdrawn lists species that ended below zero. This happens for
// hydrogen-poor inputs (H2) and for oxygen-rich, hydrogen-rich inputs (O2),
// because phases 4 and 5 do not re-check the remaining budget.
func (r Result) Overdrawn() []string { return r.Products.Negative(1e-12) }

// Engine runs the phase list. The zero value is ready to use.
type Engine struct {
	// Logger receives one Debug record per phase. nil disables tracing.
	Logger *slog.Logger
	// Verify checks atom conservation after every phase.
	Verify bool
	// Tolerance overrides DefaultTolerance when > 0.
	Tolerance float64
}

// Apportion runs the default engine and returns the product map.
func Apportion(c formula.Counts) (products.Quantities, error) {
	var e Engine
	res, err := e.Run(c)
	if err != nil {
		return nil, err
	}
	return res.Products, nil
}

// Run apportions the C/H/N/O atoms of c. Other symbols are ignored.
func (e *Engine) Run(c formula.Counts) (Result, error) {
	in, err := NewPool(c)
	if err != nil {
		return Result{}, err
	}
	tol := e.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	s := State{
		Pool:     in,
		Products: products.Quantities{},
	}
	e.trace("detonation input", 0, "input", false, s)

	phases := Phases()
	snaps := make([]Snapshot, 0, len(phases))
	for _, ph := range phases {
		skipped := ph.Guard != nil && !ph.Guard(s)
		if !skipped {
			s = ph.Apply(s.clone())
		}
		snaps = append(snaps, Snapshot{
			Phase:    ph.Index,
			Name:     ph.Name,
			Skipped:  skipped,
			Pool:     s.Pool,
			Reserve:  s.Reserve,
			Products: s.Products.Clone(),
		})
		e.trace("detonation phase", ph.Index, ph.Name, skipped, s)

		if e.Verify {
			if err := CheckConservation(in, s, tol); err != nil {
				var ce *ConservationError
				if errors.As(err, &ce) {
					ce.Phase = ph.Index
				}
				return Result{}, err
			}
		}
	}

	return Result{Products: assemble(s), Snapshots: snaps}, nil
}

// assemble builds the reported map; every species key is present.
func assemble(s State) products.Quantities {
	p := s.Products
	return products.Quantities{
		products.CO:    p[products.CO],
		products.N2:    p[products.N2],
		products.CO2:   p[products.CO2],
		products.H2O:   p[products.H2O],
		products.Solid: s.Pool.C,
		products.O2:    s.Pool.O / 2,
		products.H2:    s.Pool.H / 2,
	}
}

// NewPool reads the C/H/N/O counts of c, rejecting negative, NaN and
// infinite values.
func NewPool(c formula.Counts) (Pool, error) {
	var p Pool
	for _, f := range []struct {
		sym string
		dst *float64
	}{{"C", &p.C}, {"H", &p.H}, {"N", &p.N}, {"O", &p.O}} {
		v := c.Get(f.sym)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Pool{}, fmt.Errorf("%w: %s=%v", ErrInvalidCount, f.sym, v)
		}
		*f.dst = v
	}
	return p, nil
}

func (e *Engine) trace(msg string, idx int, name string, skipped bool, s State) {
	if e.Logger == nil || !e.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	p := s.Products
	e.Logger.Debug(msg,
		"phase", idx,
		"name", name,
		"skipped", skipped,
		slog.Group("pool",
			"C", s.Pool.C, "H", s.Pool.H, "N", s.Pool.N, "O", s.Pool.O,
			"reserve_C", s.Reserve,
		),
		slog.Group("products",
			"CO", p[products.CO], "CO2", p[products.CO2],
			"H2O", p[products.H2O], "N2", p[products.N2],
		),
	)
}
