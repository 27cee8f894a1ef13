// pkg/api/products_v1.go
package api

import "time"

// ProductsV1 is the stable JSON/JSONL schema for one reaction model.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ProductsV1 struct {
	Model       string             `json:"model"`    // "detonation" | "combustion"
	Products    map[string]float64 `json:"products"` // mol per mol of compound, every species key present
	GasMoles    float64            `json:"gas_moles"`
	VolumePerKg float64            `json:"volume_l_per_kg"`
	Overdrawn   []string           `json:"overdrawn,omitempty"`
	ExcessO     float64            `json:"excess_o,omitempty"`  // combustion only
	DeficitO    float64            `json:"deficit_o,omitempty"` // combustion only
}

// CompoundV1 is the stable schema for one evaluated formula or catalog row.
type CompoundV1 struct {
	Name          string      `json:"name"`
	Formula       string      `json:"formula"`
	Canonical     string      `json:"canonical"`
	MolarWeight   float64     `json:"molar_weight"`   // g/mol
	OxygenBalance float64     `json:"oxygen_balance"` // percent
	TemperatureK  float64     `json:"temperature_k"`
	Detonation    *ProductsV1 `json:"detonation,omitempty"`
	Combustion    *ProductsV1 `json:"combustion,omitempty"`
}

// RunV1 describes a persisted screening run.
type RunV1 struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	TemperatureK float64   `json:"temperature_k"`
	Source       string    `json:"source"`
	Rows         int       `json:"rows"`
}
