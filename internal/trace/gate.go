package trace

// gate is the level filter shared by the concrete tracers.
type gate struct {
	level Level
}

// Level returns the current tracing level.
func (g gate) Level() Level { return g.level }

// Enabled returns true if tracing is active (Level > LevelOff).
func (g gate) Enabled() bool { return g.level > LevelOff }

// admits reports whether ev passes the level filter.
// Heartbeats bypass it: they are the signal that the process is alive.
func (g gate) admits(ev *Event) bool {
	return ev.Kind == KindHeartbeat || g.level.ShouldEmit(ev.Scope)
}
