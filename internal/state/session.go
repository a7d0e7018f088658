package state

import (
	"database/sql"
	"errors"
	"time"
)

// Session is the trainer state restored on the next start.
type Session struct {
	Page        int
	Mode        string // sequence mode name
	Repetitions int
	Reciter     int

	// Plan cursor
	Verse      int
	Phase      int
	Repetition int

	Volume float64
	Muted  bool

	UpdatedAt time.Time
}

func getSession(db *sql.DB) (*Session, error) {
	row := db.QueryRow(`
		SELECT page, mode, repetitions, reciter, verse, phase, repetition, volume, muted, updated_at
		FROM session_state WHERE id = 1
	`)

	var s Session
	var updatedAt int64
	err := row.Scan(&s.Page, &s.Mode, &s.Repetitions, &s.Reciter,
		&s.Verse, &s.Phase, &s.Repetition, &s.Volume, &s.Muted, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Unix(updatedAt, 0)

	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}
	_, err := db.Exec(`
		INSERT INTO session_state (id, page, mode, repetitions, reciter, verse, phase, repetition, volume, muted, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			page = excluded.page,
			mode = excluded.mode,
			repetitions = excluded.repetitions,
			reciter = excluded.reciter,
			verse = excluded.verse,
			phase = excluded.phase,
			repetition = excluded.repetition,
			volume = excluded.volume,
			muted = excluded.muted,
			updated_at = excluded.updated_at
	`, s.Page, s.Mode, s.Repetitions, s.Reciter, s.Verse, s.Phase, s.Repetition,
		s.Volume, s.Muted, s.UpdatedAt.Unix())

	return err
}
