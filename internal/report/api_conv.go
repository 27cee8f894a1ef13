// internal/report/api_conv.go
package report

import (
	"detprod-core/combustion"
	"detprod-core/formula"
	"detprod-core/gasvol"
	"detprod-core/products"

	"detprod/internal/screen"
	"detprod/pkg/api"
)

// ToAPICompound converts an evaluated row into the v1 wire schema, keeping
// only the models selected by m.
func ToAPICompound(r screen.Row, tempK float64, m Model) api.CompoundV1 {
	counts := formula.Parse(r.Formula)
	out := api.CompoundV1{
		Name:          r.Name,
		Formula:       r.Formula,
		Canonical:     formula.Canonical(counts),
		MolarWeight:   r.MolarWeight,
		OxygenBalance: r.OxygenBalance,
		TemperatureK:  tempK,
	}
	if m.Has(Detonation) {
		out.Detonation = &api.ProductsV1{
			Model:       Detonation.String(),
			Products:    toMap(r.Detonation),
			GasMoles:    gasvol.Moles(r.Detonation),
			VolumePerKg: r.DetonationVolume,
			Overdrawn:   r.Overdrawn,
		}
	}
	if m.Has(Combustion) {
		cr := combustion.Products(counts)
		out.Combustion = &api.ProductsV1{
			Model:       Combustion.String(),
			Products:    toMap(r.Combustion),
			GasMoles:    gasvol.Moles(r.Combustion),
			VolumePerKg: r.CombustionVolume,
			ExcessO:     cr.ExcessO,
			DeficitO:    cr.DeficitO,
		}
	}
	return out
}

func toMap(q products.Quantities) map[string]float64 {
	out := make(map[string]float64, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}
