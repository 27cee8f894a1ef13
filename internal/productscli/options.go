package productscli

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

	// Formulas as given; "-" means one formula per line on stdin.
	Formulas []string

	Model     report.Model
	Precision int
	All       bool
	Trace     bool
	Verify    bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, "detonation and combustion product estimates", func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] FORMULA... | -\n", name)

		_, _ = fmt.Fprintln(out, "\nProducts:")
		_, _ = fmt.Fprintf(out, "  -m, --model string          detonation | combustion | both [%s]\n", def("model"))
		_, _ = fmt.Fprintf(out, "  -p, --precision int         Decimals for product quantities [%s]\n", def("precision"))
		_, _ = fmt.Fprintf(out, "      --all                   Also list species that print as zero [%s]\n", def("all"))
		_, _ = fmt.Fprintf(out, "      --trace                 Log every apportionment phase at debug level [%s]\n", def("trace"))
		_, _ = fmt.Fprintf(out, "      --verify                Check atom conservation after every phase [%s]\n", def("verify"))
	})
	return fs
}

// PrintExamples prints a tiny, focused quickstart for detprod.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "detprod", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Estimate detonation products of TNT:")
		_, _ = fmt.Fprintln(w, "  detprod C7H5N3O6")
		_, _ = fmt.Fprintln(w, "\nBoth models, machine-readable, with the phase trace on stderr:")
		_, _ = fmt.Fprintln(w, "  detprod --model both --output jsonl --trace C3H6N6O6 C5H8N4O12")
		_, _ = fmt.Fprintln(w, "\nFormulas from a file:")
		_, _ = fmt.Fprintln(w, "  detprod --output tsv - < formulas.txt")
	})
}

func ParseArgs(fs *flag.FlagSet, argv []string, env config.Env) (Options, error) {
	var o Options
	var help bool
	var showExamples bool
	var model string

	// Shared flags via clibase
	var c clibase.Common
	noHeader := clibase.Register(fs, &c, env, report.FormatText)

	// Product flags
	fs.StringVar(&model, "model", "detonation", "detonation | combustion | both")
	fs.StringVar(&model, "m", "detonation", "alias of --model")
	fs.IntVar(&o.Precision, "precision", report.DefaultPrecision, "decimals for product quantities")
	fs.IntVar(&o.Precision, "p", report.DefaultPrecision, "alias of --precision")
	fs.BoolVar(&o.All, "all", false, "also list species that print as zero [false]")
	fs.BoolVar(&o.Trace, "trace", false, "log every apportionment phase at debug level [false]")
	fs.BoolVar(&o.Verify, "verify", false, "check atom conservation after every phase [false]")

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
	m, err := report.ParseModel(model)
	if err != nil {
		return o, err
	}
	o.Model = m
	if o.Precision < 0 || o.Precision > 12 {
		return o, errors.New("--precision must be between 0 and 12")
	}
	if len(posArgs) == 0 {
		return o, errors.New("at least one formula is required")
	}
	o.Formulas = posArgs

	o.Common = c
	return o, nil
}
