// internal/report/tsv.go
package report

import (
	"math"
	"strconv"
	"strings"
	"time"

	"detprod-core/products"

	"detprod/internal/screen"
	"detprod/pkg/api"
)

// ProductHeader is the header row of per-formula product reports.
const ProductHeader = "formula\tmodel\tspecies\tquantity"

// DefaultPrecision is the number of decimals in product reports.
const DefaultPrecision = 3

// ScreenHeader is the header row of a screening table. The volume columns
// carry the reference temperature, e.g. "V_det_273K [l/kg]".
func ScreenHeader(tempK float64) string {
	t := strconv.FormatFloat(tempK, 'f', -1, 64)
	return strings.Join([]string{
		"name",
		"sum_formula",
		"M [g/mol]",
		"V_det_" + t + "K [l/kg]",
		"V_comb_" + t + "K [l/kg]",
		"OB [%]",
	}, "\t")
}

// FormatScreenRowTSV returns the six screening columns at full precision
// (no trailing newline).
func FormatScreenRowTSV(r screen.Row) string {
	return strings.Join([]string{
		r.Name,
		r.Formula,
		fullFloat(r.MolarWeight),
		fullFloat(r.DetonationVolume),
		fullFloat(r.CombustionVolume),
		fullFloat(r.OxygenBalance),
	}, "\t")
}

// Threshold is the magnitude below which a quantity prints as zero at the
// given precision.
func Threshold(precision int) float64 {
	return 0.5 * math.Pow(10, -float64(precision))
}

// ProductLine is one species of one model in a product report.
type ProductLine struct {
	Model    string
	Species  string
	Quantity float64
}

// ProductLines flattens the selected models of c in species order. Unless
// all is set, quantities that would print as zero are dropped.
func ProductLines(c api.CompoundV1, precision int, all bool) []ProductLine {
	var out []ProductLine
	for _, p := range []*api.ProductsV1{c.Detonation, c.Combustion} {
		if p == nil {
			continue
		}
		q := products.Quantities(p.Products)
		if !all {
			q = q.Significant(Threshold(precision))
		}
		for _, sp := range q.Species() {
			out = append(out, ProductLine{Model: p.Model, Species: sp, Quantity: q[sp]})
		}
	}
	return out
}

// FormatProductLineTSV returns one product report row (no trailing newline).
func FormatProductLineTSV(formula string, l ProductLine, precision int) string {
	return formula + "\t" + l.Model + "\t" + l.Species + "\t" + FormatQuantity(l.Quantity, precision)
}

// FormatQuantity prints v with a fixed number of decimals and never as -0.
func FormatQuantity(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

func fullFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RunHeader is the header row of a saved-run listing.
const RunHeader = "id\tcreated_at\ttemperature_k\tsource\trows"

// FormatRunTSV returns one saved-run row (no trailing newline).
func FormatRunTSV(r api.RunV1) string {
	return strings.Join([]string{
		r.ID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		fullFloat(r.TemperatureK),
		r.Source,
		strconv.Itoa(r.Rows),
	}, "\t")
}
