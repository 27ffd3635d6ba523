package driver

// Status captures progress state of one file in a check run.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being lexed.
	StatusWorking Status = "working"
	// StatusDone indicates the file finished; it may still carry diagnostics.
	StatusDone Status = "done"
	// StatusError indicates the file could not be loaded or had lexical errors.
	StatusError Status = "error"
)

// Event is a progress notification emitted by CheckPaths.
type Event struct {
	Path   string
	Status Status
	Cached bool
	Err    error
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
