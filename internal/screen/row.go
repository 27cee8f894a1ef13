// internal/screen/row.go
package screen

import (
	"fmt"

	"detprod-core/combustion"
	"detprod-core/detonation"
	"detprod-core/formula"
	"detprod-core/gasvol"
	"detprod-core/oxybal"
	"detprod-core/products"
	"detprod-core/weights"

	"detprod/internal/catalog"
)

// Row is one evaluated compound.
type Row struct {
	Index            int // position in the input catalog
	Name             string
	Formula          string
	MolarWeight      float64 // g/mol
	DetonationVolume float64 // l/kg at the configured temperature
	CombustionVolume float64 // l/kg at the configured temperature
	OxygenBalance    float64 // percent
	Detonation       products.Quantities
	Combustion       products.Quantities
	Overdrawn        []string // detonation species that ended below zero
}

// CompoundError ties an evaluation failure to the compound that caused it.
type CompoundError struct {
	Name string
	Err  error
}

func (e *CompoundError) Error() string { return e.Name + ": " + e.Err.Error() }
func (e *CompoundError) Unwrap() error { return e.Err }

// Evaluate parses c.Formula and runs every model on it. A nil eng uses the
// zero Engine.
func Evaluate(c catalog.Compound, t weights.Table, tempK float64, eng *detonation.Engine) (Row, error) {
	if eng == nil {
		eng = &detonation.Engine{}
	}
	counts := formula.Parse(c.Formula)
	row := Row{Name: c.Name, Formula: c.Formula}

	mw, err := weights.MolarWeight(counts, t)
	if err != nil {
		return Row{}, &CompoundError{Name: c.Name, Err: err}
	}
	if mw <= 0 {
		return Row{}, &CompoundError{Name: c.Name, Err: fmt.Errorf("formula %q has no recognised elements", c.Formula)}
	}
	row.MolarWeight = mw

	det, err := eng.Run(counts)
	if err != nil {
		return Row{}, &CompoundError{Name: c.Name, Err: err}
	}
	row.Detonation = det.Products
	row.Overdrawn = det.Overdrawn()

	row.Combustion = combustion.Products(counts).Quantities()

	if row.DetonationVolume, err = gasvol.PerKilogram(row.Detonation, mw, tempK); err != nil {
		return Row{}, &CompoundError{Name: c.Name, Err: err}
	}
	if row.CombustionVolume, err = gasvol.PerKilogram(row.Combustion, mw, tempK); err != nil {
		return Row{}, &CompoundError{Name: c.Name, Err: err}
	}
	if row.OxygenBalance, err = oxybal.Percent(counts, t); err != nil {
		return Row{}, &CompoundError{Name: c.Name, Err: err}
	}
	return row, nil
}
