package app

import (
	"log/slog"

	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/state"
)

// loadPreferences reads the saved listener settings. Config values for the
// translations take precedence, and the configured reciter is used until
// one has been chosen.
func loadPreferences(store state.Interface, cfg *config.Config, log *slog.Logger) state.Preferences {
	prefs, err := store.Preferences()
	if err != nil {
		log.Warn("load preferences", "err", err)
		prefs = state.DefaultPreferences()
	}
	if prefs.Narrator == "" {
		prefs.Narrator = cfg.DefaultReciter
	}
	if cfg.ShowEnglish != nil {
		prefs.ShowEnglish = cfg.EnglishShown()
	}
	if cfg.ShowUrdu != nil {
		prefs.ShowUrdu = cfg.UrduShown()
	}
	return prefs
}

func (m Model) currentPreferences() state.Preferences {
	ps := m.machine.Snapshot()
	english, urdu := m.reader.Translations()
	return state.Preferences{
		Narrator:    ps.Narrator,
		Volume:      ps.Volume,
		Muted:       ps.Muted,
		Repeat:      ps.Repeat,
		ShowEnglish: english,
		ShowUrdu:    urdu,
	}
}

// persistPreferences saves the listener settings when they changed. The
// store debounces writes.
func (m *Model) persistPreferences() {
	prefs := m.currentPreferences()
	if prefs == m.saved {
		return
	}
	m.saved = prefs
	m.store.SavePreferences(prefs)
}
