package playback

import "time"

// State is the player state machine state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateEnded
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateLoading:
		return "Loading"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is loaded and playing or paused.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// NoVerse is the verse pointer value when no verse is selected.
const NoVerse = -1

// PlaybackState is the observable state of the machine.
type PlaybackState struct {
	IsPlaying    bool
	CurrentVerse int // NoVerse when unset
	CurrentTime  time.Duration
	Duration     time.Duration // 0 while unknown
	Narrator     string
	Volume       float64
	Muted        bool
	Repeat       bool
}

// DefaultState returns the initial state for narrator.
func DefaultState(narrator string) PlaybackState {
	return PlaybackState{
		CurrentVerse: NoVerse,
		Narrator:     narrator,
		Volume:       1,
	}
}

// HasVerse reports whether the verse pointer is set.
func (s PlaybackState) HasVerse() bool {
	return s.CurrentVerse != NoVerse
}

// EffectiveVolume is the level sent to the audio element.
func (s PlaybackState) EffectiveVolume() float64 {
	if s.Muted {
		return 0
	}
	return s.Volume
}

// resetTrack clears everything tied to the loaded track, keeping the
// narrator selection and the listener's volume, mute and repeat settings.
func (s *PlaybackState) resetTrack() {
	s.IsPlaying = false
	s.CurrentVerse = NoVerse
	s.CurrentTime = 0
	s.Duration = 0
}
