package sampler

import (
	"fmt"
	"io"
	"strconv"
	"sync"
)

// LineWriter emits records as base-10 integers, one per line, in tick
// order. Each record is written as a single Write call under a mutex
// so concurrent writers cannot interleave partial lines.
type LineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLineWriter creates a LineWriter on w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// Emit writes one record as "<value>\n".
func (lw *LineWriter) Emit(rec Record) error {
	buf := make([]byte, 0, 8)
	buf = strconv.AppendInt(buf, int64(rec.Value), 10)
	buf = append(buf, '\n')

	lw.mu.Lock()
	defer lw.mu.Unlock()
	if _, err := lw.w.Write(buf); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}
