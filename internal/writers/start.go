// internal/writers/start.go
package writers

import (
	"errors"
	"io"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// start runs body on its own goroutine. Whatever body returns, the input
// channel is drained afterwards so senders never block on a failed writer.
func start[T any](bufSize int, body func(<-chan T) error) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := body(in)
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}

// collect buffers every value; JSON arrays and aligned tables need all rows.
func collect[T any](in <-chan T) []T {
	var buf []T
	for v := range in {
		buf = append(buf, v)
	}
	return buf
}
