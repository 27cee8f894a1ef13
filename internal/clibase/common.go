// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"

	"detprod/internal/config"
	"detprod/internal/report"
)

// Common holds CLI fields shared by detprod and detprod-screen.
type Common struct {
	// Model inputs
	TemperatureK float64
	WeightsFile  string

	// Output
	Output string // tsv|text|json|jsonl
	Header bool

	// Logging
	LogLevel  string
	LogFormat string

	// Misc
	Quiet   bool
	Version bool
}

// sliceValue appends each value to a *[]string (repeatable flags)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return fmt.Sprint(*s.dst)
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// StringSlice returns a repeatable flag.Value appending to dst.
func StringSlice(dst *[]string) flag.Value { return &sliceValue{dst: dst} }

// Register wires shared flags onto fs, taking defaults from env and
// defaultOutput, and returns a pointer to the “no-header” bool that the
// caller hands to AfterParse.
func Register(fs *flag.FlagSet, c *Common, env config.Env, defaultOutput string) *bool {
	// Model inputs
	fs.Float64Var(&c.TemperatureK, "temperature", env.TemperatureK, "reference temperature for gas volumes (K)")
	fs.Float64Var(&c.TemperatureK, "T", env.TemperatureK, "alias of --temperature")
	fs.StringVar(&c.WeightsFile, "weights", env.WeightsFile, "TOML file with a [weights] table overriding atomic weights")
	fs.StringVar(&c.WeightsFile, "w", env.WeightsFile, "alias of --weights")

	// Output
	fs.StringVar(&c.Output, "output", defaultOutput, "output: tsv | text | json | jsonl")
	fs.StringVar(&c.Output, "o", defaultOutput, "alias of --output")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line [false]")

	// Logging
	fs.StringVar(&c.LogLevel, "log-level", env.LogLevel, "log level: debug | info | warn | error")
	fs.StringVar(&c.LogFormat, "log-format", env.LogFormat, "log format: text | json")

	// Misc
	fs.BoolVar(&c.Quiet, "quiet", false, "suppress non-essential warnings [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")

	return &noHeader
}

// AfterParse finalizes header and runs shared validation.
func AfterParse(c *Common, noHeader *bool) error {
	c.Header = !*noHeader
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	return Validate(c)
}

// Validate applies shared CLI invariants used by all tools.
func Validate(c *Common) error {
	if !(c.TemperatureK > 0) || math.IsInf(c.TemperatureK, 0) {
		return errors.New("--temperature must be finite and > 0")
	}
	switch c.Output {
	case report.FormatTSV, report.FormatText, report.FormatJSON, report.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid --log-format %q", c.LogFormat)
	}
	return nil
}
