package player

import "time"

// EventType identifies an audio element lifecycle event.
type EventType int

const (
	EventTimeUpdate EventType = iota
	EventLoadedMetadata
	EventDurationChange
	EventPlaying
	EventEnded
	EventError
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventTimeUpdate:
		return "timeupdate"
	case EventLoadedMetadata:
		return "loadedmetadata"
	case EventDurationChange:
		return "durationchange"
	case EventPlaying:
		return "playing"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is emitted by the audio element.
// Source is the URL that was loaded when the event fired, so consumers can
// ignore events belonging to a source that has since been replaced.
type Event struct {
	Type     EventType
	Source   string
	Time     time.Duration
	Duration time.Duration
	Err      error
}
