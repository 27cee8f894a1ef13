// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"detprod/internal/screen"
	"detprod/pkg/api"
)

// RowOptions configures screening row writers.
type RowOptions struct {
	Header       bool
	TemperatureK float64
}

// ProductOptions configures product report writers.
type ProductOptions struct {
	Header    bool
	Precision int
	All       bool // keep quantities that print as zero
}

// Writer registries (format → starter). Each format file registers itself
// in an init() block.
var (
	rowWriters     = map[string]func(io.Writer, RowOptions, int) (chan<- screen.Row, <-chan error){}
	productWriters = map[string]func(io.Writer, ProductOptions, int) (chan<- api.CompoundV1, <-chan error){}
)

// Register helpers (idempotent last-wins)
func RegisterRow(format string, fn func(io.Writer, RowOptions, int) (chan<- screen.Row, <-chan error)) {
	rowWriters[format] = fn
}

func RegisterProduct(format string, fn func(io.Writer, ProductOptions, int) (chan<- api.CompoundV1, <-chan error)) {
	productWriters[format] = fn
}

// RowFormats lists the registered row formats, sorted.
func RowFormats() []string { return keys(rowWriters) }

// ProductFormats lists the registered product formats, sorted.
func ProductFormats() []string { return keys(productWriters) }

// StartRowWriter spins up a writer goroutine for screening rows.
func StartRowWriter(out io.Writer, format string, header bool, tempK float64, bufSize int) (chan<- screen.Row, <-chan error) {
	fn, ok := rowWriters[format]
	if !ok {
		return start(bufSize, func(<-chan screen.Row) error {
			return fmt.Errorf("unsupported output %q", format)
		})
	}
	return fn(out, RowOptions{Header: header, TemperatureK: tempK}, bufSize)
}

// StartProductWriter spins up a writer goroutine for per-formula reports.
func StartProductWriter(out io.Writer, format string, header bool, precision int, all bool, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	fn, ok := productWriters[format]
	if !ok {
		return start(bufSize, func(<-chan api.CompoundV1) error {
			return fmt.Errorf("unsupported output %q", format)
		})
	}
	return fn(out, ProductOptions{Header: header, Precision: precision, All: all}, bufSize)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
