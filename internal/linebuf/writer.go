// Package linebuf assembles whole lines out of streamed writes.
package linebuf

import (
	"bytes"
	"io"
	"sync"
)

// Writer returns an io.Writer that splits its input on newline,
// calling fn for each line, trailing newline included.
//
// done flushes any text left over from a write
// that did not end with a newline. It may be called more than once;
// only the first call after such a write emits anything.
func Writer(fn func([]byte)) (_ io.Writer, done func()) {
	w := writer{writeLine: fn}
	return &w, w.flush
}

// writer splits written bytes into lines,
// handing them to the callback one line at a time.
type writer struct {
	writeLine func([]byte)

	// Tail of the input that is still waiting for its newline.
	buff bytes.Buffer
	mu   sync.Mutex // guards buff
}

func (w *writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := len(bs)
	for {
		idx := bytes.IndexByte(bs, '\n')
		if idx < 0 {
			// No full line left; keep the rest for the next write.
			w.buff.Write(bs)
			return total, nil
		}

		line := bs[:idx+1]
		bs = bs[idx+1:]

		if w.buff.Len() == 0 {
			w.writeLine(line)
			continue
		}

		// Complete the line started by an earlier write.
		w.buff.Write(line)
		w.writeLine(w.buff.Bytes())
		w.buff.Reset()
	}
}

// flush hands buffered text to the callback,
// even though it doesn't end with a newline.
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buff.Len() > 0 {
		w.writeLine(w.buff.Bytes())
		w.buff.Reset()
	}
}
