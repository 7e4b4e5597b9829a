package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidChapter is returned when storing a chapter outside 1..114.
var ErrInvalidChapter = errors.New("invalid chapter")

func getLastChapter(db *sql.DB) (int, bool, error) {
	var n int
	err := db.QueryRow(`SELECT last_chapter FROM reading_state WHERE id = 1`).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func setLastChapter(db *sql.DB, n int, at time.Time) error {
	if n < 1 || n > 114 {
		return fmt.Errorf("%w: %d", ErrInvalidChapter, n)
	}
	return withTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO reading_state (id, last_chapter, updated_at)
			VALUES (1, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				last_chapter = excluded.last_chapter,
				updated_at = excluded.updated_at
		`, n, at.Unix())
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO reading_history (chapter, opened_at)
			VALUES (?, ?)
			ON CONFLICT(chapter) DO UPDATE SET opened_at = excluded.opened_at
		`, n, at.UnixNano())
		return err
	})
}

func getRecentChapters(db *sql.DB, limit int) ([]int, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := db.Query(`
		SELECT chapter FROM reading_history
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		chapters = append(chapters, n)
	}
	return chapters, rows.Err()
}

// withTx executes fn within a transaction.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
