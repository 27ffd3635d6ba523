package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next global sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID. IDs start at 1; 0 means "no span".
func NextSpanID() uint64 { return spanCounter.Add(1) }

// goid parses the current goroutine id from the stack header
// ("goroutine 17 [running]:"). Returns 0 if the header is unexpected.
func goid() uint64 {
	var buf [64]byte
	header := string(buf[:runtime.Stack(buf[:], false)])
	header, ok := strings.CutPrefix(header, "goroutine ")
	if !ok {
		return 0
	}
	num, _, _ := strings.Cut(header, " ")
	id, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Span is an open begin/end pair. A nil or disabled Span is inert.
type Span struct {
	tracer  Tracer
	begin   Event
	started time.Time
	extra   map[string]string
}

func admitted(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Begin emits a SpanBegin event under parent (0 for a root) and returns
// the span to End.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !admitted(t, scope) {
		return &Span{}
	}
	sp := &Span{
		tracer:  t,
		started: time.Now(),
		begin: Event{
			Kind:     KindSpanBegin,
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goid(),
			Name:     name,
		},
	}
	ev := sp.begin
	ev.Time = sp.started
	t.Emit(&ev)
	return sp
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if !s.live() {
		return 0
	}
	return s.begin.SpanID
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = map[string]string{}
	}
	s.extra[key] = value
	return s
}

// End emits the SpanEnd event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.begin
	ev.Kind = KindSpanEnd
	ev.Time = now
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return now.Sub(s.started)
}

// Point emits an instant event when scope passes the tracer's level.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if !admitted(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goid(),
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	})
}
