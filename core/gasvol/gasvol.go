// core/gasvol/gasvol.go
// Ideal-gas volume of the gaseous products.
// Units: R in J/(mol·K), p in Pa, V in liters.

package gasvol

import (
	"fmt"

	"detprod-core/products"
)

const (
	// R is the gas constant as used by the screening sheets (J/(mol·K)).
	R = 8.31
	// PStd is standard pressure (Pa).
	PStd = 1.013e5
	// DefaultTemperatureK is the reference temperature of the export table.
	DefaultTemperatureK = 273.0
)

// Gaseous lists the species counted as gas.
var Gaseous = []string{products.CO2, products.CO, products.H2O, products.N2, products.O2, products.H2}

// Moles sums the gaseous species of q.
func Moles(q products.Quantities) float64 {
	n := 0.0
	for _, s := range Gaseous {
		n += q[s]
	}
	return n
}

// Liters converts n moles at tK kelvin and standard pressure to liters.
func Liters(n, tK float64) float64 {
	return n * R * tK / PStd * 1000
}

// PerKilogram returns the gas volume (l) released by one kilogram of a
// compound with the given molar weight (g/mol) and product map q.
func PerKilogram(q products.Quantities, molarWeight, tK float64) (float64, error) {
	if molarWeight <= 0 {
		return 0, fmt.Errorf("gas volume: molar weight must be > 0, got %v", molarWeight)
	}
	return Liters(Moles(q), tK) / (molarWeight * 1e-3), nil
}
