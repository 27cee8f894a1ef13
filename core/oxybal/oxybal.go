// core/oxybal/oxybal.go
// Oxygen balance in percent:
//
//	OB% = −1600/M · (2·C + H/2 + Σmetals − O)
//
// Negative values mean the compound lacks the oxygen to fully oxidize its
// own carbon and hydrogen.

package oxybal

import (
	"detprod-core/formula"
	"detprod-core/weights"
)

// Metals are counted as consuming one O atom each.
var Metals = []string{"Al", "Mg", "Pb", "K", "Na"}

// Percent returns the oxygen balance of c using atomic weights from t.
func Percent(c formula.Counts, t weights.Table) (float64, error) {
	mw, err := weights.MolarWeight(c, t)
	if err != nil {
		return 0, err
	}
	if mw == 0 {
		return 0, nil
	}
	metals := 0.0
	for _, m := range Metals {
		metals += c.Get(m)
	}
	return (-1600 / mw) * (2*c.Get("C") + 0.5*c.Get("H") + metals - c.Get("O")), nil
}
