package driver

import "time"

// Stage describes one step of formatting a file.
type Stage string

const (
	// StageRead reads the file from disk.
	StageRead Stage = "read"
	// StageFormat runs the formatter.
	StageFormat Stage = "format"
	// StageWrite writes the result back.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the file is finished.
	StatusDone Status = "done"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Must be goroutine-safe.
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
