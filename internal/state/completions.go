package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/hifdh/internal/db"
)

// Completion records one full pass through a page's sequence.
type Completion struct {
	ID           string
	Page         int
	Mode         string
	Repetitions  int
	Reciter      int
	MissingAudio int
	Failures     int
	CompletedAt  time.Time
}

// PageProgress summarizes the completions of a page.
type PageProgress struct {
	Page             int
	Completions      int
	FirstCompletedAt time.Time
	LastCompletedAt  time.Time
}

// RecordCompletion stores c and updates the page progress. A missing ID or
// timestamp is filled in. It returns the stored ID.
func (m *Manager) RecordCompletion(c Completion) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	at := c.CompletedAt.Unix()

	err := db.WithTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO completions (id, page, mode, repetitions, reciter, missing_audio, failures, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.Page, c.Mode, c.Repetitions, c.Reciter, c.MissingAudio, c.Failures, at); err != nil {
			return err
		}

		_, err := tx.Exec(`
			INSERT INTO page_progress (page, completions, first_completed_at, last_completed_at)
			VALUES (?, 1, ?, ?)
			ON CONFLICT(page) DO UPDATE SET
				completions = completions + 1,
				last_completed_at = excluded.last_completed_at
		`, c.Page, at, at)
		return err
	})
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// ListCompletions returns the most recent completions first.
func (m *Manager) ListCompletions(limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := m.db.Query(`
		SELECT id, page, mode, repetitions, reciter, missing_audio, failures, completed_at
		FROM completions
		ORDER BY completed_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var at int64
		if err := rows.Scan(&c.ID, &c.Page, &c.Mode, &c.Repetitions, &c.Reciter,
			&c.MissingAudio, &c.Failures, &at); err != nil {
			return nil, err
		}
		c.CompletedAt = time.Unix(at, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetPageProgress returns the progress of page, or nil if it was never completed.
func (m *Manager) GetPageProgress(page int) (*PageProgress, error) {
	var p PageProgress
	var first, last int64
	err := m.db.QueryRow(`
		SELECT page, completions, first_completed_at, last_completed_at
		FROM page_progress WHERE page = ?
	`, page).Scan(&p.Page, &p.Completions, &first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // a page without completions is valid
	}
	if err != nil {
		return nil, err
	}
	p.FirstCompletedAt = time.Unix(first, 0)
	p.LastCompletedAt = time.Unix(last, 0)
	return &p, nil
}

// CompletedPages returns how many distinct pages have been completed at least once.
func (m *Manager) CompletedPages() (int, error) {
	var n int
	err := m.db.QueryRow(`SELECT COUNT(*) FROM page_progress`).Scan(&n)
	return n, err
}

// LastCompletedAt returns when any page was last completed, or the zero time.
func (m *Manager) LastCompletedAt() (time.Time, error) {
	var at sql.NullInt64
	if err := m.db.QueryRow(`SELECT MAX(completed_at) FROM completions`).Scan(&at); err != nil {
		return time.Time{}, err
	}
	return db.NullUnixTime(at), nil
}
