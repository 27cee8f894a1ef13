// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger. level is debug|info|warn|error and
// format is text|json.
func NewLogger(dst io.Writer, level, format string) (*slog.Logger, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("log level %q: want debug, info, warn or error", level)
	}
	opts := &slog.HandlerOptions{Level: lv}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(dst, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(dst, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}
}

// Warnf logs a formatted warning unless quiet is set.
func Warnf(lg *slog.Logger, quiet bool, format string, a ...any) {
	if quiet || lg == nil {
		return
	}
	lg.Warn(fmt.Sprintf(format, a...))
}
