package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS reading_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_chapter INTEGER NOT NULL CHECK (last_chapter BETWEEN 1 AND 114),
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS reading_history (
			chapter INTEGER PRIMARY KEY CHECK (chapter BETWEEN 1 AND 114),
			opened_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_reading_history_opened_at ON reading_history(opened_at DESC);

		CREATE TABLE IF NOT EXISTS preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			narrator TEXT,
			volume REAL NOT NULL DEFAULT 1.0,
			muted INTEGER NOT NULL DEFAULT 0,
			repeat_chapter INTEGER NOT NULL DEFAULT 0,
			show_english INTEGER NOT NULL DEFAULT 1,
			show_urdu INTEGER NOT NULL DEFAULT 1
		);
	`)
	if err != nil {
		return err
	}

	// Set initial version if not exists
	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
