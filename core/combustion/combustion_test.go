package combustion

import (
	"testing"

	"detprod-core/formula"
	"detprod-core/products"
)

func TestProducts_TNTDeficit(t *testing.T) {
	r := Products(formula.Parse("C7H5N3O6"))
	if r.H2O != 2.5 || r.CO2 != 7 || r.N2 != 1.5 {
		t.Fatalf("products H2O=%v CO2=%v N2=%v", r.H2O, r.CO2, r.N2)
	}
	if r.RequiredO != 16.5 || r.AvailableO != 6 {
		t.Fatalf("oxygen required=%v available=%v", r.RequiredO, r.AvailableO)
	}
	if r.DeficitO != 10.5 || r.ExcessO != 0 {
		t.Fatalf("want deficit 10.5 and no excess, got deficit=%v excess=%v", r.DeficitO, r.ExcessO)
	}
	if _, ok := r.Quantities()[products.O2]; ok {
		t.Fatalf("deficit must not appear as O2: %v", r.Quantities())
	}
}

func TestProducts_NitroglycerinExcess(t *testing.T) {
	r := Products(formula.Parse("C3H5N3O9"))
	// required = 2.5 + 6 = 8.5; available 9
	if r.ExcessO != 0.5 || r.DeficitO != 0 {
		t.Fatalf("excess=%v deficit=%v", r.ExcessO, r.DeficitO)
	}
	if _, ok := r.Quantities()[products.O2]; ok {
		t.Fatalf("excess oxygen must not be a product: %v", r.Quantities())
	}
}

func TestProducts_Balanced(t *testing.T) {
	r := Products(formula.Parse("CO2"))
	if r.ExcessO != 0 || r.DeficitO != 0 {
		t.Fatalf("balanced input: excess=%v deficit=%v", r.ExcessO, r.DeficitO)
	}
}
