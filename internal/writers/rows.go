// internal/writers/rows.go
package writers

import (
	"io"

	"detprod/internal/jsonutil"
	"detprod/internal/report"
	"detprod/internal/screen"
	"detprod/pkg/api"
)

func init() {
	RegisterRow(report.FormatTSV, startRowTSV)
	RegisterRow(report.FormatText, startRowText)
	RegisterRow(report.FormatJSON, startRowJSON)
	RegisterRow(report.FormatJSONL, StartRowJSONLWriter)
}

// startRowTSV streams one line per row.
func startRowTSV(out io.Writer, o RowOptions, bufSize int) (chan<- screen.Row, <-chan error) {
	return start(bufSize, func(in <-chan screen.Row) error {
		if o.Header {
			if _, err := io.WriteString(out, report.ScreenHeader(o.TemperatureK)+"\n"); err != nil {
				return err
			}
		}
		for r := range in {
			if _, err := io.WriteString(out, report.FormatScreenRowTSV(r)+"\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

func startRowText(out io.Writer, o RowOptions, bufSize int) (chan<- screen.Row, <-chan error) {
	return start(bufSize, func(in <-chan screen.Row) error {
		return report.WriteScreenTable(out, report.NewPrinter(), collect(in), o.TemperatureK, o.Header)
	})
}

func startRowJSON(out io.Writer, o RowOptions, bufSize int) (chan<- screen.Row, <-chan error) {
	return start(bufSize, func(in <-chan screen.Row) error {
		list := []api.CompoundV1{}
		for r := range in {
			list = append(list, report.ToAPICompound(r, o.TemperatureK, report.Both))
		}
		return jsonutil.EncodePretty(out, list)
	})
}
