// internal/report/text.go
package report

import (
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"detprod/internal/screen"
	"detprod/pkg/api"
)

// NewPrinter returns the printer used for human-readable output.
func NewPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

// WriteScreenTable renders rows as an aligned table with two decimals and
// thousands grouping. Overdrawn species are listed in a trailing column.
func WriteScreenTable(w io.Writer, p *message.Printer, rows []screen.Row, tempK float64, header bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	if header {
		cols := strings.Split(ScreenHeader(tempK), "\t")
		cols = append(cols, "note")
		if _, err := io.WriteString(tw, strings.Join(cols, "\t")+"\t\n"); err != nil {
			return err
		}
	}
	for _, r := range rows {
		note := ""
		if len(r.Overdrawn) > 0 {
			note = "overdrawn: " + strings.Join(r.Overdrawn, ",")
		}
		if _, err := p.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t\n",
			r.Name, r.Formula, r.MolarWeight, r.DetonationVolume, r.CombustionVolume, r.OxygenBalance, note,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCompoundText renders one product report block:
//
//	C7H5N3O6  M = 227.13 g/mol  OB = -73.97 %
//	  detonation  8.000 mol gas  788.80 l/kg at 273 K
//	    CO      3.000
//	    ...
func WriteCompoundText(w io.Writer, p *message.Printer, c api.CompoundV1, precision int, all bool) error {
	title := c.Formula
	if c.Name != "" && c.Name != c.Formula {
		title = c.Name + " (" + c.Formula + ")"
	}
	if _, err := p.Fprintf(w, "%s  M = %.2f g/mol  OB = %.2f %%\n", title, c.MolarWeight, c.OxygenBalance); err != nil {
		return err
	}
	lines := ProductLines(c, precision, all)
	for _, m := range []*api.ProductsV1{c.Detonation, c.Combustion} {
		if m == nil {
			continue
		}
		if _, err := p.Fprintf(w, "  %s  %s mol gas  %.2f l/kg at %s K\n",
			m.Model, FormatQuantity(m.GasMoles, precision), m.VolumePerKg, fullFloat(c.TemperatureK)); err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, l := range lines {
			if l.Model != m.Model {
				continue
			}
			if _, err := io.WriteString(tw, "    "+l.Species+"\t"+FormatQuantity(l.Quantity, precision)+"\n"); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if m.DeficitO > 0 {
			if _, err := io.WriteString(w, "    oxygen deficit  "+FormatQuantity(m.DeficitO, precision)+" O\n"); err != nil {
				return err
			}
		}
		if m.ExcessO > 0 {
			if _, err := io.WriteString(w, "    oxygen excess  "+FormatQuantity(m.ExcessO, precision)+" O\n"); err != nil {
				return err
			}
		}
		if len(m.Overdrawn) > 0 {
			if _, err := io.WriteString(w, "    overdrawn: "+strings.Join(m.Overdrawn, ",")+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
