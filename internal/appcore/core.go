// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"detprod-core/detonation"
	"detprod-core/weights"

	"detprod/internal/catalog"
	"detprod/internal/cmdutil"
	"detprod/internal/screen"
	"detprod/internal/writers"
)

type Options struct {
	Threads      int
	TemperatureK float64
	Weights      weights.Table
	Engine       *detonation.Engine

	KeepGoing    bool
	SkipExitCode int
	Quiet        bool
	Logger       *slog.Logger

	// Finish runs after every row was written and the output flushed.
	Finish func(context.Context) error
}

type VisitorFunc[T any] func(screen.Row) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run screens compounds through visit into the writer from wf and maps the
// outcome to an exit code: 0 ok, 2 bad compound, 3 I/O, 130 cancelled,
// o.SkipExitCode when --keep-going skipped anything.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	compounds []catalog.Compound,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	skipped := 0
	var onErr func(catalog.Compound, error) error
	if o.KeepGoing {
		onErr = func(_ catalog.Compound, err error) error {
			skipped++
			cmdutil.Warnf(o.Logger, o.Quiet, "skipped %v", err)
			return nil
		}
	}

	total, perr := cmdutil.RunStream[T](
		ctx,
		screen.Config{
			Threads:      thr,
			TemperatureK: o.TemperatureK,
			Weights:      o.Weights,
			Engine:       o.Engine,
		},
		compounds,
		visit,
		func(x T) error {
			select {
			case inCh <- x:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		onErr,
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		var ce *screen.CompoundError
		if errors.As(perr, &ce) {
			return 2
		}
		return 3
	}
	if o.Logger != nil {
		o.Logger.Info("screening done", "rows", total, "skipped", skipped)
	}

	if o.Finish != nil {
		if err := o.Finish(ctx); err != nil {
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if skipped > 0 {
		return o.SkipExitCode
	}
	return 0
}
