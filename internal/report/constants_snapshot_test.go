package report

import "testing"

func TestHeaders_Stable(t *testing.T) {
	const wantScreen = "name\tsum_formula\tM [g/mol]\tV_det_273K [l/kg]\tV_comb_273K [l/kg]\tOB [%]"
	if got := ScreenHeader(273); got != wantScreen {
		t.Fatalf("ScreenHeader changed:\n got:  %q\n want: %q", got, wantScreen)
	}
	const wantProducts = "formula\tmodel\tspecies\tquantity"
	if ProductHeader != wantProducts {
		t.Fatalf("ProductHeader changed:\n got:  %q\n want: %q", ProductHeader, wantProducts)
	}
}
