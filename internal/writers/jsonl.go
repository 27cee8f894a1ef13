// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"detprod/internal/jsonlutil"
	"detprod/internal/report"
	"detprod/internal/screen"
	"detprod/pkg/api"
)

// StartRowJSONLWriter streams each screening row as one JSON line (v1).
func StartRowJSONLWriter(out io.Writer, o RowOptions, bufSize int) (chan<- screen.Row, <-chan error) {
	return jsonlutil.Start[screen.Row](out, bufSize,
		func(enc *json.Encoder, r screen.Row) error {
			return enc.Encode(report.ToAPICompound(r, o.TemperatureK, report.Both))
		},
		IsBrokenPipe,
	)
}

// StartProductJSONLWriter streams each product report as one JSON line (v1).
func StartProductJSONLWriter(out io.Writer, _ ProductOptions, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	return jsonlutil.Start[api.CompoundV1](out, bufSize,
		func(enc *json.Encoder, c api.CompoundV1) error {
			return enc.Encode(c)
		},
		IsBrokenPipe,
	)
}
