package gasvol

import (
	"math"
	"strings"
	"testing"

	"detprod-core/products"
)

func TestLiters_OneMoleAtReference(t *testing.T) {
	got := Liters(1, DefaultTemperatureK)
	want := 8.31 * 273 / 1.013e5 * 1000 // ≈ 22.39 l
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Liters(1, 273) = %v, want %v", got, want)
	}
	if math.Abs(got-22.39) > 0.01 {
		t.Fatalf("molar volume %v is not ≈22.39 l", got)
	}
}

func TestMoles_OnlyGaseousSpecies(t *testing.T) {
	q := products.Quantities{
		products.CO: 3, products.CO2: 1, products.H2O: 1, products.N2: 1.5,
		products.Solid: 3, products.O2: 0, products.H2: 1.5,
		"O2_deficit": 10,
	}
	if got := Moles(q); got != 8 {
		t.Fatalf("Moles = %v, want 8 (C(s) and unknown keys excluded)", got)
	}
}

func TestPerKilogram(t *testing.T) {
	q := products.Quantities{products.N2: 1}
	got, err := PerKilogram(q, 28.014, 273)
	if err != nil {
		t.Fatal(err)
	}
	want := Liters(1, 273) / 0.028014
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("PerKilogram = %v, want %v", got, want)
	}
}

func TestPerKilogram_RejectsZeroWeight(t *testing.T) {
	_, err := PerKilogram(products.Quantities{}, 0, 273)
	if err == nil || !strings.Contains(err.Error(), "molar weight must be > 0") {
		t.Fatalf("expected molar weight error, got %v", err)
	}
}
