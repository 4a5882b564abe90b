// Package iotest provides IO utilities for testing.
package iotest

import (
	"bytes"
	"io"
	"testing"

	"go.abhg.dev/trace2html/internal/linebuf"
)

var _newline = []byte("\n")

// Writer builds an io.Writer that writes to the given testing.TB,
// one log entry per line of input.
//
// Text from a write that did not end with a newline
// is logged when the test finishes.
func Writer(t testing.TB) io.Writer {
	w, flush := linebuf.Writer(func(line []byte) {
		t.Logf("%s", bytes.TrimSuffix(line, _newline))
	})
	t.Cleanup(flush)
	return w
}
