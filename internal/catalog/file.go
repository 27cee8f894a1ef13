package catalog

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"detprod-core/weights"
)

// File is the on-disk TOML layout:
//
//	[weights]
//	S = 32.06
//
//	[[compound]]
//	name    = "TNT"
//	formula = "C7H5N3O6"
//	group   = "nitroaromatics"
type File struct {
	Weights  map[string]float64 `toml:"weights"`
	Compound []Compound         `toml:"compound"`
}

// Parse decodes TOML bytes. It does not require any compounds.
func Parse(data []byte) (File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return File{}, fmt.Errorf("parse catalog: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return File{}, fmt.Errorf("parse catalog: unknown key %q", undec[0].String())
	}
	for sym, w := range f.Weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return File{}, fmt.Errorf("parse catalog: weight of %s must be finite and > 0, got %v", sym, w)
		}
	}
	return f, nil
}

func readFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read catalog: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// LoadFile reads the compounds of a TOML catalog file.
func LoadFile(path string) ([]Compound, error) {
	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(f.Compound); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f.Compound, nil
}

// LoadFiles concatenates several catalogs in argument order and validates
// the union. It also returns their [weights] tables merged in the same
// order, later files winning; the table is nil when no file has one.
func LoadFiles(paths []string) ([]Compound, weights.Table, error) {
	var (
		out []Compound
		tbl weights.Table
	)
	for _, p := range paths {
		f, err := readFile(p)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, f.Compound...)
		if len(f.Weights) > 0 {
			tbl = tbl.Merge(weights.Table(f.Weights))
		}
	}
	if err := Validate(out); err != nil {
		return nil, nil, err
	}
	return out, tbl, nil
}

// LoadWeights builds the weight table: the built-in table, then each of
// layers, then the [weights] table of path. An empty path skips the file.
func LoadWeights(path string, layers ...weights.Table) (weights.Table, error) {
	tbl := weights.Default()
	for _, l := range layers {
		tbl = tbl.Merge(l)
	}
	if path == "" {
		return tbl, nil
	}
	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return tbl.Merge(weights.Table(f.Weights)), nil
}
