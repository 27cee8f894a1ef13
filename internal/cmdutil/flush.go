package cmdutil

import (
	"bufio"
	"fmt"
	"io"

	"detprod/internal/writers"
)

// FlushCode flushes outw and returns code, 0 on a broken pipe, or 3 when the
// flush fails.
func FlushCode(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}
