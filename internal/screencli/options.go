package screencli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"detprod/internal/clibase"
	"detprod/internal/cliutil"
	"detprod/internal/config"
	"detprod/internal/report"
)

type Options struct {
	clibase.Common

	// Catalog input; empty means the built-in catalog.
	CatalogFiles []string
	Only         []string

	// Persistence
	DBPath   string
	ListRuns bool
	ShowRun  string

	// Run control
	Threads      int
	KeepGoing    bool
	SkipExitCode int
	Verify       bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "screen a catalog of energetic compounds", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] [catalog.toml ...]\n", name)
		_, _ = fmt.Fprintf(out, "  %s --db runs.db --list-runs | --show-run ID\n", name)

		_, _ = fmt.Fprintln(out, "\nCatalog:")
		_, _ = fmt.Fprintln(out, "      --only NAME|GROUP       Keep matching compounds (repeatable)")
		_, _ = fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		_, _ = fmt.Fprintf(out, "  -k, --keep-going            Skip compounds that fail instead of stopping [%s]\n", def("keep-going"))
		_, _ = fmt.Fprintf(out, "      --skip-exit-code int    Exit code when compounds were skipped [%s]\n", def("skip-exit-code"))
		_, _ = fmt.Fprintf(out, "      --verify                Check atom conservation after every phase [%s]\n", def("verify"))

		_, _ = fmt.Fprintln(out, "\nRuns:")
		_, _ = fmt.Fprintln(out, "      --db path               SQLite file; every screening run is saved")
		_, _ = fmt.Fprintln(out, "      --list-runs             List saved runs and exit")
		_, _ = fmt.Fprintln(out, "      --show-run ID           Print the rows of a saved run and exit")
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for detprod-screen.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "detprod-screen", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Screen the built-in catalog (TSV, like explosives.csv):")
		_, _ = fmt.Fprintln(w, "  detprod-screen > explosives.tsv")
		_, _ = fmt.Fprintln(w, "\nOnly nitramines, as a table, at 298.15 K:")
		_, _ = fmt.Fprintln(w, "  detprod-screen --only nitramines -o text -T 298.15")
		_, _ = fmt.Fprintln(w, "\nKeep a history of runs:")
		_, _ = fmt.Fprintln(w, "  detprod-screen --db runs.db my-catalog.toml")
		_, _ = fmt.Fprintln(w, "  detprod-screen --db runs.db --list-runs")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string, env config.Env) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	// Shared flags via clibase
	var c clibase.Common
	noHeader := clibase.Register(fs, &c, env, report.FormatTSV)

	// Screening flags
	fs.Var(clibase.StringSlice(&o.Only), "only", "keep compounds with this name or group (repeatable)")
	fs.IntVar(&o.Threads, "threads", env.Threads, "worker threads (0=all CPUs)")
	fs.IntVar(&o.Threads, "t", env.Threads, "alias of --threads")
	fs.BoolVar(&o.KeepGoing, "keep-going", false, "skip compounds that fail [false]")
	fs.BoolVar(&o.KeepGoing, "k", false, "alias of --keep-going")
	fs.IntVar(&o.SkipExitCode, "skip-exit-code", 1, "exit code when compounds were skipped [1]")
	fs.BoolVar(&o.Verify, "verify", false, "check atom conservation after every phase [false]")

	// Runs
	fs.StringVar(&o.DBPath, "db", env.DBPath, "SQLite file for saved runs")
	fs.BoolVar(&o.ListRuns, "list-runs", false, "list saved runs and exit [false]")
	fs.StringVar(&o.ShowRun, "show-run", "", "print the rows of a saved run")

	// Help / examples
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	// Split & parse
	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	if err := clibase.AfterParse(&c, noHeader); err != nil {
		return o, err
	}
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		o.CatalogFiles = exp
	} else {
		o.CatalogFiles = append([]string(nil), env.CatalogFiles...)
	}

	if o.Threads < 0 {
		return o, errors.New("--threads must be ≥ 0")
	}
	if o.SkipExitCode < 0 || o.SkipExitCode > 255 {
		return o, errors.New("--skip-exit-code must be between 0 and 255")
	}
	if (o.ListRuns || o.ShowRun != "") && o.DBPath == "" {
		return o, errors.New("--list-runs and --show-run need --db")
	}
	if o.ListRuns && o.ShowRun != "" {
		return o, errors.New("--list-runs conflicts with --show-run")
	}
	if (o.ListRuns || o.ShowRun != "") && (len(posArgs) > 0 || len(o.Only) > 0) {
		return o, errors.New("--list-runs/--show-run take no catalog or --only")
	}

	o.Common = c
	return o, nil
}
