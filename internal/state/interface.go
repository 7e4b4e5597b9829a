package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	LastChapter() (int, bool, error)
	SetLastChapter(n int) error
	RecentChapters(limit int) ([]int, error)
	Preferences() (Preferences, error)
	SavePreferences(p Preferences)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
