// internal/appshell/shell.go
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the entry point every detprod tool exposes.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs a tool with SIGINT/SIGTERM cancellation and exits with its code.
func Main(run RunFunc) {
	os.Exit(Exec(os.Args[1:], os.Stdout, os.Stderr, run))
}

// Exec is Main without the process exit. No arguments means -h.
func Exec(argv []string, stdout, stderr io.Writer, run RunFunc) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}
	return code
}
