// internal/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Compound is one named entry of a screening catalog.
type Compound struct {
	Name    string `toml:"name"`
	Formula string `toml:"formula"`
	Group   string `toml:"group"`
	Note    string `toml:"note"`
}

// Groups used by the built-in catalog.
const (
	GroupNitroaromatic  = "nitroaromatics"
	GroupNitramine      = "nitramines"
	GroupNitrateEster   = "nitrate esters"
	GroupNitroguanidine = "nitroguanidines"
	GroupANFO           = "anfo"
	GroupOther          = "others"
	GroupReference      = "reference"
)

// ErrNoCompounds is returned when a selection or file yields nothing.
var ErrNoCompounds = errors.New("no compounds")

var builtin = []Compound{
	{Name: "TNT", Formula: "C7H5N3O6", Group: GroupNitroaromatic},
	{Name: "PA", Formula: "C6H3N3O7", Group: GroupNitroaromatic},
	{Name: "Tetryl", Formula: "C7H5N5O8", Group: GroupNitroaromatic},
	{Name: "HNS", Formula: "C14H6N6O12", Group: GroupNitroaromatic},

	{Name: "RDX", Formula: "C3H6N6O6", Group: GroupNitramine},
	{Name: "HMX", Formula: "C4H8N8O8", Group: GroupNitramine},
	{Name: "CL20", Formula: "C6H6N12O12", Group: GroupNitramine},

	{Name: "EGDN", Formula: "C2H4N2O6", Group: GroupNitrateEster},
	{Name: "Trinitroglycerin", Formula: "C3H5N3O9", Group: GroupNitrateEster},
	{Name: "PETN", Formula: "C5H8N4O12", Group: GroupNitrateEster},

	{Name: "NQ", Formula: "CH4N4O2", Group: GroupNitroguanidine},

	// 3 mol NH4NO3 per mol fuel oil, scaled 10x for everything but C.
	{Name: "ANFO_3:1", Formula: "CN6H14O9", Group: GroupANFO,
		Note: "95% AN / 5% FO; 3 mol NH4NO3 per mol fuel oil"},

	{Name: "Ammonium perchlorate", Formula: "NH4Cl1O4", Group: GroupOther},
	{Name: "Ammonium chlorate", Formula: "NH4ClO3", Group: GroupOther},
	{Name: "Tetrazene", Formula: "C2H8N10O", Group: GroupOther, Note: "adjusted for hydrate water"},
	{Name: "Pb(N3)2", Formula: "PbN6", Group: GroupOther},
	{Name: "Ag3N", Formula: "Ag3N", Group: GroupOther},
	{Name: "TATP", Formula: "C9H18O6", Group: GroupOther},
	{Name: "NC_mono", Formula: "C6H9NO7", Group: GroupOther},
	{Name: "NC_di", Formula: "C6H8N2O9", Group: GroupOther},
	{Name: "NC_tri", Formula: "C6H7N3O11", Group: GroupOther},
	{Name: "black powder", Formula: "K2N2O6SC3", Group: GroupOther, Note: "75% KNO3, 15% C, 10% S"},
	{Name: "nitromethane", Formula: "CH3NO2", Group: GroupOther},

	{Name: "C(s)", Formula: "C", Group: GroupReference},
	{Name: "C(s,poly)", Formula: "C100", Group: GroupReference},
	{Name: "H2", Formula: "H2", Group: GroupReference},
}

// Default returns a copy of the built-in catalog in its canonical order.
func Default() []Compound {
	return append([]Compound(nil), builtin...)
}

// Validate checks that every entry has a name and formula and that names
// are unique (case-insensitive).
func Validate(list []Compound) error {
	if len(list) == 0 {
		return ErrNoCompounds
	}
	seen := make(map[string]int, len(list))
	for i, c := range list {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("compound[%d]: name is required", i)
		}
		if strings.TrimSpace(c.Formula) == "" {
			return fmt.Errorf("compound[%d] %q: formula is required", i, c.Name)
		}
		key := strings.ToLower(c.Name)
		if j, dup := seen[key]; dup {
			return fmt.Errorf("compound[%d] %q: duplicate of compound[%d]", i, c.Name, j)
		}
		seen[key] = i
	}
	return nil
}

// Select keeps the compounds whose name or group matches one of keys
// (case-insensitive), preserving catalog order. Empty keys select all.
// A key that matches nothing is an error.
func Select(list []Compound, keys []string) ([]Compound, error) {
	if len(keys) == 0 {
		return append([]Compound(nil), list...), nil
	}
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[strings.ToLower(strings.TrimSpace(k))] = false
	}
	var out []Compound
	for _, c := range list {
		name, group := strings.ToLower(c.Name), strings.ToLower(c.Group)
		_, byName := want[name]
		_, byGroup := want[group]
		if !byName && !byGroup {
			continue
		}
		if byName {
			want[name] = true
		}
		if byGroup {
			want[group] = true
		}
		out = append(out, c)
	}
	for _, k := range keys {
		if !want[strings.ToLower(strings.TrimSpace(k))] {
			return nil, fmt.Errorf("select %q: no compound or group with that name", k)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoCompounds
	}
	return out, nil
}
