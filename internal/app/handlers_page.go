// internal/app/handlers_page.go
package app

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/app/popupctl"
	"github.com/llehouerou/hifdh/internal/errmsg"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/helpbindings"
	"github.com/llehouerou/hifdh/internal/ui/history"
	"github.com/llehouerou/hifdh/internal/ui/textinput"
	"github.com/llehouerou/hifdh/internal/ui/versepanel"
)

// currentPage is the page being loaded, or else the page shown.
func (m Model) currentPage() int {
	switch {
	case m.loading != 0:
		return m.loading
	case m.page != nil:
		return m.page.Number
	default:
		return m.startPage
	}
}

// stepPage opens the next or previous page; it stops at the mushaf bounds.
func (m *Model) stepPage(delta int) tea.Cmd {
	target := m.currentPage() + delta
	if quran.ValidatePage(target) != nil {
		return nil
	}
	return m.gotoPage(target)
}

// gotoPage starts loading page n. Playback carries on to the new page if it
// was running.
func (m *Model) gotoPage(n int) tea.Cmd {
	if err := quran.ValidatePage(n); err != nil {
		m.Popups.ShowError(errmsg.Format(errmsg.OpPageGoto, err))
		return nil
	}
	if m.page != nil && m.page.Number == n && m.loading == 0 {
		return nil
	}

	opts := pageLoadOptions{autoplay: m.playback.Status == playback.StatusPlaying}
	m.loadSeq++
	m.loading = n
	m.resizeComponents()
	return m.loadPageCmd(n, m.driver.State().Reciter, opts, m.loadSeq)
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.loadSeq {
		return m, nil
	}
	m.loading = 0
	page := msg.Page

	if msg.reciter {
		if err := m.driver.SetReciter(page.Reciter); err != nil {
			m.showDriverError(errmsg.OpSetReciter, err)
			return m, nil
		}
	} else {
		if err := m.driver.LoadPage(page); err != nil {
			m.logger.Error("driver rejected page", "page", page.Number, "err", err)
			m.Popups.ShowError(errmsg.FormatWith(errmsg.OpPageLoad, strconv.Itoa(page.Number), err))
			return m, nil
		}
		if msg.restore != nil {
			if err := m.driver.Seek(*msg.restore); err != nil {
				m.logger.Debug("saved position not restored", "page", page.Number, "err", err)
			}
		}
	}

	m.page = page
	m.memorized = m.isMemorized(page.Number)
	m.VersePanel.SetPage(page)
	m.resizeComponents()
	m.syncPlayback()
	if !m.playback.Status.IsActive() {
		m.VersePanel.SetCursor(m.playback.Verse)
		m.VersePanel.Follow()
	}
	m.logger.Info("page ready", "page", page.Number, "reciter", page.Reciter, "verses", page.VerseCount())

	var cmds []tea.Cmd
	if n := missingAudio(page); n == page.VerseCount() && n > 0 {
		cmds = append(cmds, m.addNotification(fmt.Sprintf("No recitation for page %d", page.Number), true))
	}
	if msg.autoplay {
		if err := m.driver.Play(); err != nil {
			m.showDriverError(errmsg.OpPlaybackStart, err)
		}
		m.syncPlayback()
	}
	m.saveSession()
	return m, tea.Batch(cmds...)
}

// toggleMemorized flips the memorized mark of the shown page.
func (m *Model) toggleMemorized() tea.Cmd {
	if m.page == nil {
		return nil
	}
	page := m.page.Number
	if err := m.stateMgr.SetMemorized(page, !m.memorized); err != nil {
		m.logger.Error("memorized mark not saved", "page", page, "err", err)
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpMarkMemorized, strconv.Itoa(page), err))
		return nil
	}
	m.memorized = !m.memorized
	if m.memorized {
		return m.addNotification(fmt.Sprintf("Page %d marked memorized", page), false)
	}
	return m.addNotification(fmt.Sprintf("Page %d no longer memorized", page), false)
}

func (m Model) handlePageLoadError(msg PageLoadErrorMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.loadSeq {
		return m, nil
	}
	m.loading = 0
	m.resizeComponents()
	m.logger.Error("page load failed", "page", msg.Number, "err", msg.Err)
	m.Popups.ShowError(errmsg.FormatWith(errmsg.OpPageLoad, strconv.Itoa(msg.Number), msg.Err))
	return m, nil
}

func (m Model) handleSurahPage(msg SurahPageMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Popups.ShowError(errmsg.FormatWith(errmsg.OpSurahGoto, strconv.Itoa(msg.Surah), msg.Err))
		return m, nil
	}
	return m, m.gotoPage(msg.Page)
}

func (m Model) handleHistoryLoaded(msg HistoryLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Popups.ShowError(errmsg.Format(errmsg.OpCompletionHistory, msg.Err))
		return m, nil
	}
	return m, m.Popups.ShowHistory(msg.Entries, msg.Summary)
}

// handleAction routes actions emitted by popups and the verse panel.
func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	switch a := msg.Action.(type) {
	case textinput.Result:
		return m.handleTextInputResult(a)
	case helpbindings.Close:
		m.Popups.Hide(popupctl.Help)
	case history.Close:
		m.Popups.Hide(popupctl.History)
	case history.GotoPage:
		m.Popups.Hide(popupctl.History)
		return m, m.gotoPage(a.Page)
	case versepanel.JumpToVerse:
		return m, m.startAt(a.Index, a.StartHere)
	default:
		m.logger.Debug("unhandled action", "source", msg.Source, "action", msg.Action.ActionType())
	}
	return m, nil
}

func (m Model) handleTextInputResult(res textinput.Result) (tea.Model, tea.Cmd) {
	m.Popups.Hide(popupctl.TextInput)
	if res.Canceled {
		return m, nil
	}
	mode, _ := res.Context.(popupctl.InputMode)
	n, err := strconv.Atoi(res.Text)
	if err != nil {
		return m, nil
	}

	switch mode {
	case popupctl.InputGotoPage:
		return m, m.gotoPage(n)
	case popupctl.InputGotoJuz:
		page, err := quran.JuzStartPage(n)
		if err != nil {
			m.Popups.ShowError(errmsg.Format(errmsg.OpJuzGoto, err))
			return m, nil
		}
		return m, m.gotoPage(page)
	case popupctl.InputGotoSurah:
		if page, ok := m.chapterStartPage(n); ok {
			return m, m.gotoPage(page)
		}
		return m, surahPageCmd(m.pages, n, m.timeout)
	case popupctl.InputRepetitions:
		return m, m.setRepetitions(n)
	case popupctl.InputReciter:
		return m, m.changeReciter(n)
	case popupctl.InputNone:
	}
	return m, nil
}

// chapterStartPage looks surah n up in the loaded chapter list.
func (m Model) chapterStartPage(n int) (int, bool) {
	ch, ok := quran.ChapterAt(m.chapters, n)
	if !ok || quran.ValidatePage(ch.StartPage) != nil {
		return 0, false
	}
	return ch.StartPage, true
}

func missingAudio(p *quran.Page) int {
	n := 0
	for _, v := range p.Verses {
		if !v.HasAudio() {
			n++
		}
	}
	return n
}
