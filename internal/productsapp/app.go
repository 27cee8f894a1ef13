// internal/productsapp/app.go
package productsapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"detprod-core/detonation"

	"detprod/internal/appcore"
	"detprod/internal/catalog"
	"detprod/internal/clibase"
	"detprod/internal/cliutil"
	"detprod/internal/cmdutil"
	"detprod/internal/config"
	"detprod/internal/productscli"
	"detprod/internal/report"
	"detprod/internal/screen"
	"detprod/internal/version"
	"detprod/pkg/api"
)

// Stdin feeds the "-" formula argument.
var Stdin io.Reader = os.Stdin

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	env, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	fs := productscli.NewFlagSet("detprod")
	fs.SetOutput(io.Discard)

	opts, err := productscli.ParseArgs(fs, argv, env)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			productscli.PrintExamples(outw)
			return cmdutil.FlushCode(outw, stderr, 0)
		}
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return cmdutil.FlushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return cmdutil.FlushCode(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "detprod version %s\n", version.Version)
		return cmdutil.FlushCode(outw, stderr, 0)
	}

	level := opts.LogLevel
	if opts.Trace {
		level = "debug"
	}
	lg, err := cmdutil.NewLogger(stderr, level, opts.LogFormat)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	formulas, err := expandFormulas(opts.Formulas)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if len(formulas) == 0 {
		_, _ = fmt.Fprintln(stderr, "no formulas on stdin")
		return 2
	}
	compounds := make([]catalog.Compound, len(formulas))
	for i, f := range formulas {
		compounds[i] = catalog.Compound{Name: f, Formula: f}
	}

	tbl, err := catalog.LoadWeights(opts.WeightsFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	eng := &detonation.Engine{Verify: opts.Verify}
	threads := env.Threads
	if opts.Trace {
		// One formula at a time keeps the phase records of a formula together.
		eng.Logger = lg
		threads = 1
	}

	coreOpts := appcore.Options{
		Threads:      threads,
		TemperatureK: opts.TemperatureK,
		Weights:      tbl,
		Engine:       eng,
		Quiet:        opts.Quiet,
		Logger:       lg,
	}
	visit := func(r screen.Row) (bool, api.CompoundV1, error) {
		if opts.Model.Has(report.Detonation) && len(r.Overdrawn) > 0 {
			cmdutil.Warnf(lg, opts.Quiet, "%s: detonation products overdrawn (%s); phases 4 and 5 do not re-check the pool",
				r.Formula, strings.Join(r.Overdrawn, ","))
		}
		return true, report.ToAPICompound(r, opts.TemperatureK, opts.Model), nil
	}
	writer := appcore.NewProductWriterFactory(opts.Output, opts.Header, opts.Precision, opts.All)
	return appcore.Run[api.CompoundV1](parent, stdout, stderr, coreOpts, compounds, visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// expandFormulas replaces each "-" with the formulas read from Stdin.
func expandFormulas(args []string) ([]string, error) {
	var out []string
	read := false
	for _, a := range args {
		if a != "-" {
			out = append(out, a)
			continue
		}
		if read {
			continue
		}
		read = true
		lines, err := cliutil.ReadArgs(Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		out = append(out, lines...)
	}
	return out, nil
}
