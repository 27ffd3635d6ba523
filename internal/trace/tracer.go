package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // immediate write
	ModeRing                          // circular buffer, dumped on demand
	ModeBoth
)

var modeNames = [...]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string { return lookupName(modeNames[:], int(m)) }

// ParseMode converts a flag value to StorageMode.
func ParseMode(s string) (StorageMode, error) {
	want := strings.ToLower(s)
	for i, name := range modeNames {
		if name != "" && name == want {
			return StorageMode(i), nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode   // zero means ModeStream
	Format     Format        // FormatAuto picks by OutputPath extension
	Output     io.Writer     // takes precedence over OutputPath
	OutputPath string        // "" or "-" means stderr
	RingSize   int           // zero means 4096
	Heartbeat  time.Duration // 0 = disabled; started by the caller
}

// New builds the tracer described by cfg. LevelOff always yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	mode := cfg.Mode
	if mode == 0 {
		mode = ModeStream
	}

	var ring *RingTracer
	if mode == ModeRing || mode == ModeBoth {
		ring = NewRingTracer(cfg.RingSize, cfg.Level)
	}

	switch mode {
	case ModeRing:
		return ring, nil
	case ModeStream, ModeBoth:
		stream, err := cfg.stream()
		if err != nil {
			return nil, err
		}
		if ring == nil {
			return stream, nil
		}
		return NewMultiTracer(cfg.Level, stream, ring), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", mode)
}

func (cfg Config) stream() (*StreamTracer, error) {
	w := cfg.Output
	if w == nil {
		var err error
		if w, err = openOutput(cfg.OutputPath); err != nil {
			return nil, err
		}
	}
	return NewStreamTracer(w, cfg.Level, cfg.format()), nil
}

func (cfg Config) format() Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch filepath.Ext(cfg.OutputPath) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// RingOf returns the ring buffer behind t, or nil.
func RingOf(t Tracer) *RingTracer {
	switch v := t.(type) {
	case *RingTracer:
		return v
	case *MultiTracer:
		return v.Ring()
	}
	return nil
}
