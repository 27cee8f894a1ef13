package appcore

import (
	"io"

	"detprod/internal/screen"
	"detprod/internal/writers"
	"detprod/pkg/api"
)

// ---------------- Row writer ----------------

type RowWriterFactory struct {
	Format       string
	Header       bool
	TemperatureK float64
}

func NewRowWriterFactory(format string, header bool, tempK float64) RowWriterFactory {
	return RowWriterFactory{Format: format, Header: header, TemperatureK: tempK}
}

func (w RowWriterFactory) Start(out io.Writer, bufSize int) (chan<- screen.Row, <-chan error) {
	return writers.StartRowWriter(out, w.Format, w.Header, w.TemperatureK, bufSize)
}

// ---------------- Product writer ----------------

type ProductWriterFactory struct {
	Format    string
	Header    bool
	Precision int
	All       bool
}

func NewProductWriterFactory(format string, header bool, precision int, all bool) ProductWriterFactory {
	return ProductWriterFactory{Format: format, Header: header, Precision: precision, All: all}
}

func (w ProductWriterFactory) Start(out io.Writer, bufSize int) (chan<- api.CompoundV1, <-chan error) {
	return writers.StartProductWriter(out, w.Format, w.Header, w.Precision, w.All, bufSize)
}
