// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"detprod/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage line, tool flags).
func UsageCommon(fs *flag.FlagSet, name, tagline string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		// Header
		fmt.Fprintf(out, "%s – %s\n\n", name, tagline)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		// Shared blocks
		fmt.Fprintln(out, "\nModel:")
		fmt.Fprintf(out, "  -T, --temperature float     Reference temperature for gas volumes, K [%s]\n", def("temperature"))
		fmt.Fprintln(out, "  -w, --weights file          TOML [weights] table overriding atomic weights")

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: tsv | text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))

		fmt.Fprintln(out, "\nLogging:")
		fmt.Fprintf(out, "      --log-level string      debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintf(out, "      --log-format string     text | json [%s]\n", def("log-format"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")

		fmt.Fprintln(out, "\nEnvironment:")
		fmt.Fprintln(out, "  DETPROD_TEMPERATURE_K, DETPROD_WEIGHTS, DETPROD_LOG_LEVEL, DETPROD_LOG_FORMAT")
		fmt.Fprintln(out, "  set flag defaults; flags win.")
	}
}
