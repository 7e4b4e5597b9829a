// Package mpris exposes playback over the MPRIS D-Bus interface so media
// keys and desktop widgets can control recitation.
//
// D-Bus calls arrive on foreign goroutines. They never touch playback state
// directly: commands are forwarded as Requests to the event loop and property
// reads are served from the last published Snapshot.
package mpris

import (
	"time"

	"github.com/llehouerou/tilawa/internal/playback"
)

// Command is a control request received over D-Bus.
type Command int

const (
	CommandPlay Command = iota
	CommandPause
	CommandPlayPause
	CommandStop
	CommandNext
	CommandPrevious
	CommandSeek        // relative, Request.Offset
	CommandSetPosition // absolute, Request.Position
	CommandSetVolume   // Request.Volume
	CommandSetRepeat   // Request.Repeat
)

// Request carries a command and its argument.
type Request struct {
	Command  Command
	Offset   time.Duration
	Position time.Duration
	Volume   float64
	Repeat   bool
}

// Snapshot is the playback state published to D-Bus clients.
type Snapshot struct {
	State         playback.State
	ChapterNumber int
	Chapter       string
	ChapterArabic string
	Reciter       string
	Position      time.Duration
	Duration      time.Duration
	Volume        float64
	Muted         bool
	Repeat        bool
	HasPrevious   bool
	HasNext       bool
}

// HasTrack reports whether a chapter with audio is selected.
func (s Snapshot) HasTrack() bool {
	return s.ChapterNumber > 0
}

// EffectiveVolume is the volume a listener hears.
func (s Snapshot) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}
