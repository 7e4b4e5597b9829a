package playback

// StateChange is emitted when the machine state changes.
type StateChange struct {
	Previous State
	Current  State
}

// VerseChange is emitted when the verse pointer moves, including when it is
// cleared (Current == NoVerse).
type VerseChange struct {
	Previous int
	Current  int
}

// ErrorEvent is emitted when the audio element fails.
type ErrorEvent struct {
	Operation string // e.g. "load", "play"
	Source    string // track URL if applicable
	Err       error
}
