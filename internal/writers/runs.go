// internal/writers/runs.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"detprod/internal/jsonutil"
	"detprod/internal/report"
	"detprod/pkg/api"
)

// WriteRuns prints a saved-run listing. Listings are small, so this is a
// plain call rather than a writer goroutine.
func WriteRuns(out io.Writer, format string, header bool, runs []api.RunV1) error {
	switch format {
	case report.FormatTSV, report.FormatText:
		w := out
		var tw *tabwriter.Writer
		if format == report.FormatText {
			tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			w = tw
		}
		sep := "\n"
		if tw != nil {
			sep = "\t\n"
		}
		if header {
			if _, err := io.WriteString(w, report.RunHeader+sep); err != nil {
				return err
			}
		}
		for _, r := range runs {
			if _, err := io.WriteString(w, report.FormatRunTSV(r)+sep); err != nil {
				return err
			}
		}
		if tw != nil {
			return tw.Flush()
		}
		return nil

	case report.FormatJSON:
		if runs == nil {
			runs = []api.RunV1{}
		}
		return jsonutil.EncodePretty(out, runs)

	case report.FormatJSONL:
		enc := json.NewEncoder(out)
		for _, r := range runs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unsupported output %q", format)
}
