package state

import (
	"database/sql"
	"errors"
)

// Preferences are the listener settings kept across sessions.
type Preferences struct {
	Narrator    string
	Volume      float64
	Muted       bool
	Repeat      bool
	ShowEnglish bool
	ShowUrdu    bool
}

// DefaultPreferences returns the settings used before anything is saved.
func DefaultPreferences() Preferences {
	return Preferences{
		Volume:      1.0,
		ShowEnglish: true,
		ShowUrdu:    true,
	}
}

func getPreferences(db *sql.DB) (Preferences, error) {
	var p Preferences
	var narrator sql.NullString

	err := db.QueryRow(`
		SELECT narrator, volume, muted, repeat_chapter, show_english, show_urdu
		FROM preferences WHERE id = 1
	`).Scan(&narrator, &p.Volume, &p.Muted, &p.Repeat, &p.ShowEnglish, &p.ShowUrdu)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultPreferences(), nil
	}
	if err != nil {
		return Preferences{}, err
	}

	p.Narrator = narrator.String
	return p, nil
}

func savePreferences(db *sql.DB, p Preferences) error {
	var narrator sql.NullString
	if p.Narrator != "" {
		narrator = sql.NullString{String: p.Narrator, Valid: true}
	}
	_, err := db.Exec(`
		INSERT INTO preferences (id, narrator, volume, muted, repeat_chapter, show_english, show_urdu)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			narrator = excluded.narrator,
			volume = excluded.volume,
			muted = excluded.muted,
			repeat_chapter = excluded.repeat_chapter,
			show_english = excluded.show_english,
			show_urdu = excluded.show_urdu
	`, narrator, p.Volume, p.Muted, p.Repeat, p.ShowEnglish, p.ShowUrdu)
	return err
}
