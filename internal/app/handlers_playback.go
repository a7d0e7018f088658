// internal/app/handlers_playback.go
package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/hifdh/internal/errmsg"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/sequence"
)

// syncPlayback refreshes the cached driver snapshot after a command.
func (m *Model) syncPlayback() {
	m.playback = m.driver.State()
	m.VersePanel.SetState(m.playback)
}

// showDriverError reports a failed driver command. Commands issued before the
// first page arrives are ignored.
func (m *Model) showDriverError(op errmsg.Op, err error) {
	if err == nil || errors.Is(err, playback.ErrNoPage) {
		return
	}
	m.logger.Error("playback command failed", "op", op, "err", err)
	m.Popups.ShowError(errmsg.Format(op, err))
}

// togglePlayback plays or pauses. A completed page starts over.
func (m *Model) togglePlayback() tea.Cmd {
	if m.page == nil {
		return nil
	}
	if m.driver.State().Status == playback.StatusCompleted {
		if err := m.driver.Reset(); err != nil {
			m.showDriverError(errmsg.OpPlaybackStart, err)
			return nil
		}
	}
	if err := m.driver.Toggle(); err != nil {
		m.showDriverError(errmsg.OpPlaybackStart, err)
		return nil
	}
	m.VersePanel.Follow()
	m.syncPlayback()
	return nil
}

func (m *Model) resetPlayback() tea.Cmd {
	if err := m.driver.Reset(); err != nil {
		m.showDriverError(errmsg.OpPlaybackJump, err)
		return nil
	}
	m.syncPlayback()
	m.VersePanel.SetCursor(0)
	m.VersePanel.Follow()
	m.saveSession()
	return nil
}

// stepVerse moves the plan to the next or previous verse, playing on if the
// sequence was playing.
func (m *Model) stepVerse(delta int) tea.Cmd {
	var err error
	if delta > 0 {
		err = m.driver.NextVerse()
	} else {
		err = m.driver.PreviousVerse()
	}
	if err != nil {
		m.showDriverError(errmsg.OpPlaybackJump, err)
		return nil
	}
	m.syncPlayback()
	m.VersePanel.SetCursor(m.playback.Verse)
	m.VersePanel.Follow()
	m.saveSession()
	return nil
}

// jumpTo moves the plan to verse index without playing.
func (m *Model) jumpTo(index int) tea.Cmd {
	if err := m.driver.JumpTo(index); err != nil {
		m.showDriverError(errmsg.OpPlaybackJump, err)
		return nil
	}
	m.syncPlayback()
	m.VersePanel.SetCursor(index)
	m.VersePanel.Follow()
	m.saveSession()
	return nil
}

// startAt restarts the sequence, from index when startHere is set, and plays.
func (m *Model) startAt(index int, startHere bool) tea.Cmd {
	if err := m.driver.JumpToVerse(index, startHere); err != nil {
		m.showDriverError(errmsg.OpPlaybackJump, err)
		return nil
	}
	if err := m.driver.Play(); err != nil {
		m.showDriverError(errmsg.OpPlaybackStart, err)
	}
	m.VersePanel.Follow()
	m.syncPlayback()
	m.saveSession()
	return nil
}

func (m *Model) setMode(mode sequence.Mode) tea.Cmd {
	if err := m.driver.SetMode(mode); err != nil {
		m.showDriverError(errmsg.OpSetMode, err)
		return nil
	}
	m.syncPlayback()
	m.saveSession()
	return m.addNotification(mode.Label()+" mode", false)
}

// setRepetitions changes the target; values outside [1, MaxRepetitions] are
// ignored.
func (m *Model) setRepetitions(n int) tea.Cmd {
	if n < 1 || n > sequence.MaxRepetitions {
		return nil
	}
	if err := m.driver.SetRepetitionTarget(n); err != nil {
		m.showDriverError(errmsg.OpSetTarget, err)
		return nil
	}
	m.syncPlayback()
	m.saveSession()
	return nil
}

// changeReciter fetches the current page for reciter id; the driver switches
// once the new audio URLs are known.
func (m *Model) changeReciter(id int) tea.Cmd {
	if id == m.driver.State().Reciter {
		return nil
	}
	if m.page == nil {
		if err := m.driver.SetReciter(id); err != nil {
			m.showDriverError(errmsg.OpSetReciter, err)
		}
		m.syncPlayback()
		return nil
	}
	m.loadSeq++
	m.loading = m.page.Number
	m.resizeComponents()
	return m.loadPageCmd(m.page.Number, id, pageLoadOptions{reciter: true}, m.loadSeq)
}

// --- Driver events ---

func (m Model) handleDriverState(msg DriverStateMsg) (tea.Model, tea.Cmd) {
	m.syncPlayback()
	cmds := []tea.Cmd{m.WatchDriverEvents()}

	if msg.Current == playback.StatusCompleted && msg.Previous != playback.StatusCompleted {
		st := m.playback
		st.Status = playback.StatusCompleted
		m.logger.Info("page completed", "page", st.PageID, "mode", st.Mode, "repetitions", st.Repetitions,
			"missing", st.MissingAudio, "failures", st.Failures)
		cmds = append(cmds, m.recordCompletionCmd(st))
	}
	m.saveSession()
	return m, tea.Batch(cmds...)
}

func (m Model) handleDriverPosition(msg DriverPositionMsg) (tea.Model, tea.Cmd) {
	m.playback = msg.State
	m.VersePanel.SetState(msg.State)
	m.saveSession()
	return m, m.WatchDriverEvents()
}

func (m Model) handleDriverDiagnostic(msg DriverDiagnosticMsg) (tea.Model, tea.Cmd) {
	d := msg.Diagnostic
	key := fmt.Sprintf("#%d", d.Verse+1)
	if m.page != nil && m.page.Number == d.PageID {
		if v, ok := m.page.Verse(d.Verse); ok {
			key = v.Key
		}
	}

	var text string
	switch d.Kind {
	case playback.DiagnosticMissingAudio:
		text = fmt.Sprintf("No audio for %s, skipped", key)
		m.logger.Warn("verse without audio", "page", d.PageID, "verse", key)
	default:
		text = fmt.Sprintf("Could not play %s, skipped", key)
		m.logger.Warn("verse playback failed", "page", d.PageID, "verse", key, "url", d.URL, "err", d.Err)
	}
	m.playback = m.driver.State()
	return m, tea.Batch(m.addNotification(text, true), m.WatchDriverEvents())
}

func (m Model) handleCompletionRecorded(msg CompletionRecordedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Error("completion not recorded", "page", msg.Completion.Page, "err", msg.Err)
		m.Popups.ShowError(errmsg.Format(errmsg.OpCompletionRecord, msg.Err))
		return m, nil
	}
	text := fmt.Sprintf("Page %d completed", msg.Completion.Page)
	if msg.Times > 1 {
		text += fmt.Sprintf(" for the %s time", humanize.Ordinal(msg.Times))
	}
	return m, m.addNotification(text, false)
}
