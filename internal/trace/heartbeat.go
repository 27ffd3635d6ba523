package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits liveness events while a long check runs.
// A heartbeat with no SpanEnd after it points at a stuck file.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	done     chan struct{}
	exited   chan struct{}
	stop     sync.Once
}

// StartHeartbeat starts the heartbeat goroutine. It returns nil (which is
// safe to Stop) when tracing is off or interval is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go h.loop(time.Now())
	return h
}

func (h *Heartbeat) loop(start time.Time) {
	defer close(h.exited)
	tick := time.NewTicker(h.interval)
	defer tick.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-h.done:
			return
		case now := <-tick.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    goid(),
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(beat) + " up " + now.Sub(start).Round(time.Millisecond).String(),
			})
		}
	}
}

// Stop halts the goroutine and waits for it. Repeated calls are no-ops.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stop.Do(func() { close(h.done) })
	<-h.exited
}
