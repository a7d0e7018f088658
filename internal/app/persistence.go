// internal/app/persistence.go
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
)

// isMemorized reports the memorized mark of page. A failed lookup shows the
// page unmarked.
func (m Model) isMemorized(page int) bool {
	ok, err := m.stateMgr.IsMemorized(page)
	if err != nil {
		m.logger.Warn("memorized mark not read", "page", page, "err", err)
	}
	return ok
}

// restoreSession applies the saved session: page and plan cursor, audio level
// and, unless keepConfig is set, the sequence settings.
func (m *Model) restoreSession(keepConfig bool) error {
	s, err := m.stateMgr.GetSession()
	if err != nil {
		return err
	}
	if s == nil {
		return nil
	}

	if quran.ValidatePage(s.Page) == nil {
		m.startPage = s.Page
		if !keepConfig {
			m.restore = &sequence.Position{
				Verse:      s.Verse,
				Phase:      sequence.Phase(s.Phase),
				Repetition: s.Repetition,
			}
		}
	}
	if s.Volume > 0 && s.Volume <= 1 {
		m.audio.SetVolume(s.Volume)
	}
	m.audio.SetMuted(s.Muted)

	if keepConfig {
		return nil
	}
	var errs []error
	if mode, err := sequence.ParseMode(s.Mode); err == nil {
		errs = append(errs, m.driver.SetMode(mode))
	}
	if s.Repetitions > 0 {
		errs = append(errs, m.driver.SetRepetitionTarget(min(s.Repetitions, sequence.MaxRepetitions)))
	}
	if s.Reciter > 0 {
		errs = append(errs, m.driver.SetReciter(s.Reciter))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("apply saved settings: %w", err)
	}
	return nil
}

// saveSession persists the page, plan cursor and settings. The state manager
// debounces writes.
func (m *Model) saveSession() {
	if m.page == nil {
		return
	}
	st := m.driver.State()
	s := state.Session{
		Page:        m.page.Number,
		Mode:        st.Mode.String(),
		Repetitions: st.Repetitions,
		Reciter:     st.Reciter,
		Volume:      m.audio.Volume(),
		Muted:       m.audio.Muted(),
		UpdatedAt:   time.Now(),
	}
	// A finished page restarts from its first verse.
	if st.Status != playback.StatusCompleted {
		s.Verse = st.Verse
		s.Phase = int(st.Phase)
		s.Repetition = st.Repetition
	}
	m.stateMgr.SaveSession(s)
}
