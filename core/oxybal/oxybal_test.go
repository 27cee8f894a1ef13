package oxybal

import (
	"errors"
	"math"
	"testing"

	"detprod-core/formula"
	"detprod-core/weights"
)

func TestPercent_KnownCompounds(t *testing.T) {
	cases := []struct {
		formula string
		want    float64
	}{
		{"C7H5N3O6", -73.96},   // TNT
		{"C3H6N6O6", -21.61},   // RDX
		{"C3H5N3O9", 3.52},     // nitroglycerin
		{"C5H8N4O12", -10.12},  // PETN
	}
	for _, tc := range cases {
		got, err := Percent(formula.Parse(tc.formula), weights.Default())
		if err != nil {
			t.Fatalf("%s: %v", tc.formula, err)
		}
		if math.Abs(got-tc.want) > 0.01 {
			t.Errorf("%s: OB=%.4f want ≈%.2f", tc.formula, got, tc.want)
		}
	}
}

func TestPercent_MetalsConsumeOxygen(t *testing.T) {
	// Lead azide: no C/H/O, one Pb → negative balance from the metal alone.
	got, err := Percent(formula.Parse("PbN6"), weights.Default())
	if err != nil {
		t.Fatal(err)
	}
	mw := 207.2 + 6*14.007
	if math.Abs(got-(-1600/mw)) > 1e-9 {
		t.Fatalf("OB=%v want %v", got, -1600/mw)
	}
}

func TestPercent_MissingWeight(t *testing.T) {
	_, err := Percent(formula.Parse("C2Xe"), weights.Default())
	if !errors.Is(err, weights.ErrMissingWeight) {
		t.Fatalf("want ErrMissingWeight, got %v", err)
	}
}

func TestPercent_EmptyFormula(t *testing.T) {
	got, err := Percent(formula.Counts{}, weights.Default())
	if err != nil || got != 0 {
		t.Fatalf("empty formula: %v %v", got, err)
	}
}
