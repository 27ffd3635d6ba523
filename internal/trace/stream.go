package trace

import (
	"io"
	"os"
	"sync"
)

// StreamTracer writes every admitted event to w as soon as it arrives.
type StreamTracer struct {
	gate
	format Format
	mu     sync.Mutex
	w      io.Writer
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level: level}, format: format, w: w}
}

// Emit writes an event to the output. Write errors are dropped: tracing
// never fails the command.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.admits(ev) {
		return
	}
	ev.Seq = NextSeq()
	line := FormatEvent(ev, t.format)

	t.mu.Lock()
	_, _ = t.w.Write(line)
	t.mu.Unlock()
}

// Flush calls Flush on the writer when it has one.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer. Standard streams stay open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	switch t.w {
	case os.Stdout, os.Stderr:
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
