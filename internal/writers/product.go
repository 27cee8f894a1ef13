// internal/writers/product.go
package writers

import (
	"io"

	"detprod/internal/jsonutil"
	"detprod/internal/report"
	"detprod/pkg/api"
)

func init() {
	RegisterProduct(report.FormatTSV, startProductTSV)
	RegisterProduct(report.FormatText, startProductText)
	RegisterProduct(report.FormatJSON, startProductJSON)
	RegisterProduct(report.FormatJSONL, StartProductJSONLWriter)
}

func startProductTSV(out io.Writer, o ProductOptions, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	return start(bufSize, func(in <-chan api.CompoundV1) error {
		if o.Header {
			if _, err := io.WriteString(out, report.ProductHeader+"\n"); err != nil {
				return err
			}
		}
		for c := range in {
			for _, l := range report.ProductLines(c, o.Precision, o.All) {
				if _, err := io.WriteString(out, report.FormatProductLineTSV(c.Formula, l, o.Precision)+"\n"); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// startProductText writes one block per compound, blank-line separated.
func startProductText(out io.Writer, o ProductOptions, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	return start(bufSize, func(in <-chan api.CompoundV1) error {
		p := report.NewPrinter()
		first := true
		for c := range in {
			if !first {
				if _, err := io.WriteString(out, "\n"); err != nil {
					return err
				}
			}
			first = false
			if err := report.WriteCompoundText(out, p, c, o.Precision, o.All); err != nil {
				return err
			}
		}
		return nil
	})
}

func startProductJSON(out io.Writer, _ ProductOptions, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	return start(bufSize, func(in <-chan api.CompoundV1) error {
		list := collect(in)
		if list == nil {
			list = []api.CompoundV1{}
		}
		return jsonutil.EncodePretty(out, list)
	})
}
