// internal/player/interface.go
package player

import "time"

// Interface is the audio element contract: one source at a time, explicit
// play/pause/seek, and lifecycle events reported on a channel.
type Interface interface {
	SetSource(url string)
	Source() string
	Play() error
	Pause()
	SetCurrentTime(t time.Duration)
	CurrentTime() time.Duration
	Duration() time.Duration
	SetVolume(level float64)
	Volume() float64
	Events() <-chan Event
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
