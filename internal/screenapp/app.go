// internal/screenapp/app.go
package screenapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"detprod-core/detonation"
	"detprod-core/weights"

	"detprod/internal/appcore"
	"detprod/internal/catalog"
	"detprod/internal/clibase"
	"detprod/internal/cmdutil"
	"detprod/internal/config"
	"detprod/internal/screen"
	"detprod/internal/screencli"
	"detprod/internal/store"
	"detprod/internal/version"
	"detprod/internal/writers"
	"detprod/pkg/api"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	env, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	fs := screencli.NewFlagSet("detprod-screen")
	fs.SetOutput(io.Discard)

	opts, err := screencli.ParseArgs(fs, argv, env)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			screencli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "detprod-screen version %s\n", version.Version)
		return cmdutil.FlushCode(outw, stderr, 0)
	}

	lg, err := cmdutil.NewLogger(stderr, opts.LogLevel, opts.LogFormat)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	var db *store.DB
	if opts.DBPath != "" {
		db, err = store.Open(opts.DBPath)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			if errors.Is(err, store.ErrBadPath) {
				return 2
			}
			return 3
		}
		defer db.Close()
	}

	switch {
	case opts.ListRuns:
		return listRuns(parent, outw, stderr, db, opts)
	case opts.ShowRun != "":
		return showRun(parent, stdout, stderr, db, opts)
	}

	compounds, catWeights, source, err := loadCatalog(opts)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	tbl, err := catalog.LoadWeights(opts.WeightsFile, catWeights)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	lg.Debug("screening", "compounds", len(compounds), "source", source, "temperature_k", opts.TemperatureK)

	var rows []screen.Row
	coreOpts := appcore.Options{
		Threads:      opts.Threads,
		TemperatureK: opts.TemperatureK,
		Weights:      tbl,
		Engine:       &detonation.Engine{Verify: opts.Verify},
		KeepGoing:    opts.KeepGoing,
		SkipExitCode: opts.SkipExitCode,
		Quiet:        opts.Quiet,
		Logger:       lg,
	}
	if db != nil {
		coreOpts.Finish = func(ctx context.Context) error {
			return saveRun(ctx, stderr, lg, db, opts, source, rows)
		}
	}
	visit := func(r screen.Row) (bool, screen.Row, error) {
		if len(r.Overdrawn) > 0 {
			cmdutil.Warnf(lg, opts.Quiet, "%s: detonation products overdrawn (%s)", r.Name, strings.Join(r.Overdrawn, ","))
		}
		if db != nil {
			rows = append(rows, r)
		}
		return true, r, nil
	}
	writer := appcore.NewRowWriterFactory(opts.Output, opts.Header, opts.TemperatureK)
	return appcore.Run[screen.Row](parent, stdout, stderr, coreOpts, compounds, visit, writer)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// loadCatalog returns the selected compounds, the [weights] of the catalog
// files and a label for where they came from.
func loadCatalog(opts screencli.Options) ([]catalog.Compound, weights.Table, string, error) {
	list := catalog.Default()
	var tbl weights.Table
	source := "builtin"
	if len(opts.CatalogFiles) > 0 {
		var err error
		if list, tbl, err = catalog.LoadFiles(opts.CatalogFiles); err != nil {
			return nil, nil, "", err
		}
		source = strings.Join(opts.CatalogFiles, ",")
	}
	list, err := catalog.Select(list, opts.Only)
	if err != nil {
		return nil, nil, "", err
	}
	return list, tbl, source, nil
}

func saveRun(ctx context.Context, stderr io.Writer, lg *slog.Logger, db *store.DB, opts screencli.Options, source string, rows []screen.Row) error {
	id, err := db.SaveRun(ctx, store.Run{TemperatureK: opts.TemperatureK, Source: source}, rows)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	lg.Info("run saved", "id", id, "rows", len(rows))
	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "saved run %s (%d rows)\n", id, len(rows))
	}
	return nil
}

func listRuns(ctx context.Context, outw *bufio.Writer, stderr io.Writer, db *store.DB, opts screencli.Options) int {
	runs, err := db.ListRuns(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	out := make([]api.RunV1, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.V1())
	}
	if err := writers.WriteRuns(outw, opts.Output, opts.Header, out); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return cmdutil.FlushCode(outw, stderr, 0)
}

// showRun replays the rows of a saved run through the row writer.
func showRun(ctx context.Context, stdout, stderr io.Writer, db *store.DB, opts screencli.Options) int {
	run, err := db.GetRun(ctx, opts.ShowRun)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		if errors.Is(err, store.ErrRunNotFound) {
			return 2
		}
		return 3
	}
	rows, err := db.Rows(ctx, run.ID)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	outw := bufio.NewWriter(stdout)
	in, errCh := writers.StartRowWriter(outw, opts.Output, opts.Header, run.TemperatureK, len(rows))
	for _, r := range rows {
		in <- r
	}
	close(in)
	if err := <-errCh; writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return cmdutil.FlushCode(outw, stderr, 0)
}
