package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a command (load, lex, report...).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Items int // files or tokens handled, 0 if not counted
}

// Timer records phases in the order they begin. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts a phase and returns the handle for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes phase idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) { t.EndCount(idx, note, 0) }

// EndCount is End that also records how many items the phase handled.
func (t *Timer) EndCount(idx int, note string, items int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Note, p.Items = time.Since(p.Start), note, items
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Items      int     `json:"items,omitempty"`
}

// Report is every phase plus their summed duration.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Report snapshots the recorded phases. An empty timer gives a zero Report.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var rep Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		rep.Phases = append(rep.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Note:       p.Note,
			Items:      p.Items,
		})
	}
	rep.TotalMS = millis(total)
	return rep
}

// Summary renders the report as an aligned text table for --timings.
func (t *Timer) Summary() string {
	rep := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&sb, "  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Items > 0 {
			fmt.Fprintf(&sb, "  %6d items", p.Items)
		}
		if p.Note != "" {
			fmt.Fprintf(&sb, "  // %s", p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-12s %8.2f ms\n", "total", rep.TotalMS)
	return sb.String()
}
