package appcore

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"detprod/internal/catalog"
	"detprod/internal/cmdutil"
	"detprod/internal/report"
	"detprod/internal/screen"
)

func pass(r screen.Row) (bool, screen.Row, error) { return true, r, nil }

func mixed() []catalog.Compound {
	return []catalog.Compound{
		{Name: "TNT", Formula: "C7H5N3O6"},
		{Name: "xenon difluoride", Formula: "XeF2"},
		{Name: "RDX", Formula: "C3H6N6O6"},
	}
}

func TestRun_TSV(t *testing.T) {
	var out, errb bytes.Buffer
	code := Run[screen.Row](context.Background(), &out, &errb,
		Options{Threads: 2, TemperatureK: 273},
		catalog.Default()[:3], pass, NewRowWriterFactory(report.FormatTSV, true, 273))
	require.Equal(t, 0, code, errb.String())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[3], "Tetryl\t"))
}

func TestRun_BadCompoundIsInputError(t *testing.T) {
	var out, errb bytes.Buffer
	code := Run[screen.Row](context.Background(), &out, &errb,
		Options{Threads: 1, TemperatureK: 273},
		mixed(), pass, NewRowWriterFactory(report.FormatTSV, false, 273))
	require.Equal(t, 2, code)
	require.Contains(t, errb.String(), "xenon difluoride")
}

func TestRun_KeepGoing(t *testing.T) {
	var out, errb bytes.Buffer
	lg, err := cmdutil.NewLogger(&errb, "warn", "text")
	require.NoError(t, err)
	finished := false
	code := Run[screen.Row](context.Background(), &out, &errb,
		Options{
			Threads: 3, TemperatureK: 273, KeepGoing: true, SkipExitCode: 4, Logger: lg,
			Finish: func(context.Context) error { finished = true; return nil },
		},
		mixed(), pass, NewRowWriterFactory(report.FormatTSV, false, 273))
	require.Equal(t, 4, code)
	require.True(t, finished)
	require.Equal(t, 2, strings.Count(out.String(), "\n"))
	require.Contains(t, errb.String(), "skipped xenon difluoride")
}

func TestRun_FinishError(t *testing.T) {
	var out, errb bytes.Buffer
	code := Run[screen.Row](context.Background(), &out, &errb,
		Options{TemperatureK: 273, Finish: func(context.Context) error { return errors.New("db locked") }},
		catalog.Default()[:1], pass, NewRowWriterFactory(report.FormatTSV, false, 273))
	require.Equal(t, 3, code)
	require.Contains(t, errb.String(), "db locked")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errb bytes.Buffer
	code := Run[screen.Row](ctx, &out, &errb, Options{Threads: 2, TemperatureK: 273},
		catalog.Default(), pass, NewRowWriterFactory(report.FormatJSONL, false, 273))
	require.Equal(t, 130, code)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_WriteErrorIsIOError(t *testing.T) {
	var errb bytes.Buffer
	code := Run[screen.Row](context.Background(), failWriter{}, &errb,
		Options{Threads: 1, TemperatureK: 273},
		catalog.Default(), pass, NewRowWriterFactory(report.FormatTSV, true, 273))
	require.Equal(t, 3, code)
	require.Contains(t, errb.String(), "disk full")
}
