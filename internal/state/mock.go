package state

// Mock is a test double for Manager.
type Mock struct {
	lastChapter int
	hasLast     bool
	recent      []int
	prefs       Preferences
	setErr      error
	closed      bool

	SetLastCalls []int
	SavedPrefs   []Preferences
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{prefs: DefaultPreferences()}
}

func (m *Mock) LastChapter() (int, bool, error) {
	return m.lastChapter, m.hasLast, nil
}

func (m *Mock) SetLastChapter(n int) error {
	m.SetLastCalls = append(m.SetLastCalls, n)
	if m.setErr != nil {
		return m.setErr
	}
	m.lastChapter = n
	m.hasLast = true
	m.recent = append([]int{n}, removeInt(m.recent, n)...)
	return nil
}

func (m *Mock) RecentChapters(limit int) ([]int, error) {
	if limit < len(m.recent) {
		return m.recent[:limit], nil
	}
	return m.recent, nil
}

func (m *Mock) Preferences() (Preferences, error) {
	return m.prefs, nil
}

func (m *Mock) SavePreferences(p Preferences) {
	m.prefs = p
	m.SavedPrefs = append(m.SavedPrefs, p)
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetLast(n int) {
	m.lastChapter = n
	m.hasLast = true
}

func (m *Mock) SetLastError(err error) { m.setErr = err }

func (m *Mock) SetPreferences(p Preferences) { m.prefs = p }

func (m *Mock) IsClosed() bool { return m.closed }

func removeInt(s []int, v int) []int {
	out := s[:0:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
