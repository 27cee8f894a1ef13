package writers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"detprod-core/weights"

	"detprod/internal/catalog"
	"detprod/internal/report"
	"detprod/internal/screen"
	"detprod/pkg/api"
)

func rows(t *testing.T) []screen.Row {
	t.Helper()
	var out []screen.Row
	for i, c := range []catalog.Compound{
		{Name: "TNT", Formula: "C7H5N3O6"},
		{Name: "NQ", Formula: "CH4N4O2"},
	} {
		r, err := screen.Evaluate(c, weights.Default(), 273, nil)
		require.NoError(t, err)
		r.Index = i
		out = append(out, r)
	}
	return out
}

func sendRows(t *testing.T, format string, header bool) string {
	t.Helper()
	var buf bytes.Buffer
	in, errCh := StartRowWriter(&buf, format, header, 273, 1)
	for _, r := range rows(t) {
		in <- r
	}
	close(in)
	require.NoError(t, <-errCh)
	return buf.String()
}

func TestFormats_Registered(t *testing.T) {
	want := []string{"json", "jsonl", "text", "tsv"}
	require.Equal(t, want, RowFormats())
	require.Equal(t, want, ProductFormats())
}

func TestRowWriter_TSV(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(sendRows(t, report.FormatTSV, true)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, report.ScreenHeader(273), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "TNT\tC7H5N3O6\t"))
	require.True(t, strings.HasPrefix(lines[2], "NQ\tCH4N4O2\t"))

	noHeader := sendRows(t, report.FormatTSV, false)
	require.True(t, strings.HasPrefix(noHeader, "TNT\t"))
}

func TestRowWriter_JSONAndJSONL(t *testing.T) {
	var list []api.CompoundV1
	require.NoError(t, json.Unmarshal([]byte(sendRows(t, report.FormatJSON, false)), &list))
	require.Len(t, list, 2)
	require.Equal(t, "TNT", list[0].Name)
	require.NotNil(t, list[0].Detonation)
	require.NotNil(t, list[0].Combustion)
	require.Equal(t, []string{"O2"}, list[1].Detonation.Overdrawn)

	lines := strings.Split(strings.TrimSpace(sendRows(t, report.FormatJSONL, true)), "\n")
	require.Len(t, lines, 2)
	var nq api.CompoundV1
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &nq))
	require.InDelta(t, -1.0, nq.Detonation.Products["O2"], 1e-9)
}

func TestRowWriter_EmptyJSONIsArray(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartRowWriter(&buf, report.FormatJSON, false, 273, 0)
	close(in)
	require.NoError(t, <-errCh)
	require.Equal(t, "[]\n", buf.String())
}

func TestRowWriter_Text(t *testing.T) {
	out := sendRows(t, report.FormatText, true)
	require.Contains(t, out, "OB [%]")
	require.Contains(t, out, "overdrawn: O2")
}

func TestProductWriter_TSV(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartProductWriter(&buf, report.FormatTSV, true, 3, false, 4)
	in <- report.ToAPICompound(rows(t)[0], 273, report.Detonation)
	close(in)
	require.NoError(t, <-errCh)
	require.Equal(t, strings.Join([]string{
		report.ProductHeader,
		"C7H5N3O6\tdetonation\tCO\t3.000",
		"C7H5N3O6\tdetonation\tCO2\t1.000",
		"C7H5N3O6\tdetonation\tH2O\t1.000",
		"C7H5N3O6\tdetonation\tN2\t1.500",
		"C7H5N3O6\tdetonation\tC(s)\t3.000",
		"C7H5N3O6\tdetonation\tH2\t1.500",
	}, "\n")+"\n", buf.String())
}

func TestProductWriter_TextBlocks(t *testing.T) {
	var buf bytes.Buffer
	in, errCh := StartProductWriter(&buf, report.FormatText, false, 2, false, 4)
	for _, r := range rows(t) {
		in <- report.ToAPICompound(r, 273, report.Both)
	}
	close(in)
	require.NoError(t, <-errCh)
	require.Equal(t, 2, strings.Count(buf.String(), "g/mol"))
	require.Contains(t, buf.String(), "\n\nNQ (CH4N4O2)")
}

func TestStart_UnknownFormat(t *testing.T) {
	in, errCh := StartRowWriter(io.Discard, "fasta", false, 273, 1)
	for _, r := range rows(t) {
		in <- r
	}
	close(in)
	require.ErrorContains(t, <-errCh, `unsupported output "fasta"`)

	pin, perrCh := StartProductWriter(io.Discard, "xml", false, 3, false, 1)
	close(pin)
	require.Error(t, <-perrCh)
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }

func TestRowWriter_FailedWriterDrains(t *testing.T) {
	boom := errors.New("disk full")
	in, errCh := StartRowWriter(failWriter{boom}, report.FormatTSV, true, 273, 1)
	for i := 0; i < 5; i++ {
		in <- rows(t)[0]
	}
	close(in)
	require.ErrorIs(t, <-errCh, boom)
}

func TestIsBrokenPipe(t *testing.T) {
	require.True(t, IsBrokenPipe(syscall.EPIPE))
	require.True(t, IsBrokenPipe(io.ErrClosedPipe))
	require.False(t, IsBrokenPipe(nil))
	require.False(t, IsBrokenPipe(errors.New("x")))
}

func TestWriteRuns(t *testing.T) {
	runs := []api.RunV1{{
		ID: "0b8f", CreatedAt: time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC),
		TemperatureK: 273, Source: "builtin", Rows: 26,
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteRuns(&buf, report.FormatTSV, true, runs))
	require.Equal(t, report.RunHeader+"\n0b8f\t2026-10-16T08:00:00Z\t273\tbuiltin\t26\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRuns(&buf, report.FormatJSON, false, nil))
	require.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteRuns(&buf, report.FormatJSONL, false, runs))
	var got api.RunV1
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, 26, got.Rows)

	require.Error(t, WriteRuns(&buf, "fasta", false, runs))
}
