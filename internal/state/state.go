// Package state persists reading progress and listener preferences in SQLite.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "tilawa"
	dbFileName   = "tilawa.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Preferences
}

// Open opens the state database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the state database at path, creating it if needed.
func OpenPath(path string) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps writes serialized.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = savePreferences(m.db, *pending)
	}

	return m.db.Close()
}

// SavePreferences stores p after a short delay. Rapid changes such as volume
// adjustments collapse into a single write.
func (m *Manager) SavePreferences(p Preferences) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = savePreferences(m.db, *pending)
		}
	})
}

// Preferences returns the saved preferences, or the defaults when none are
// saved. Unsaved pending changes are returned as well.
func (m *Manager) Preferences() (Preferences, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		return *pending, nil
	}
	return getPreferences(m.db)
}

// LastChapter returns the last opened chapter.
func (m *Manager) LastChapter() (int, bool, error) {
	return getLastChapter(m.db)
}

// SetLastChapter records n as the last opened chapter.
func (m *Manager) SetLastChapter(n int) error {
	return setLastChapter(m.db, n, time.Now())
}

// RecentChapters returns up to limit recently opened chapters, newest first.
func (m *Manager) RecentChapters(limit int) ([]int, error) {
	return getRecentChapters(m.db, limit)
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
