// internal/app/keys.go
package app

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/app/handler"
	"github.com/llehouerou/hifdh/internal/app/popupctl"
	"github.com/llehouerou/hifdh/internal/keymap"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/playerbar"
	"github.com/llehouerou/hifdh/internal/ui/textinput"
)

const (
	volumeStep   = 0.05
	maxReciterID = 999
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.Popups.HandleKey(msg); handled {
		return m, cmd
	}

	key := msg.String()

	var a keymap.Action
	switch {
	case m.PendingKeys != "":
		a = m.keys.ResolveSequence(m.PendingKeys, key)
		m.PendingKeys = ""
	case m.keys.IsPrefix(key):
		m.PendingKeys = key
		return m, KeySequenceTimeoutCmd()
	default:
		a = m.keys.Resolve(key)
	}

	_, cmd := handler.Chain(a,
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handleSequenceKeys,
		m.handlePageKeys,
		func(a keymap.Action) handler.Result { return m.handleCursorKeys(a, msg) },
	)
	return m, cmd
}

func (m *Model) handleGlobalKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionQuit:
		m.saveSession()
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		return handler.Handled(m.Popups.ShowHelp(keymap.Contexts))
	case keymap.ActionHistory:
		return handler.Handled(loadHistoryCmd(m.stateMgr))
	case keymap.ActionPlayerBar:
		if m.PlayerDisplayMode == playerbar.ModeExpanded {
			m.PlayerDisplayMode = playerbar.ModeCompact
		} else {
			m.PlayerDisplayMode = playerbar.ModeExpanded
		}
		m.resizeComponents()
		return handler.HandledNoCmd
	case keymap.ActionGotoPage:
		return handler.Handled(m.Popups.ShowTextInput(popupctl.InputGotoPage,
			"Go to page (1-604)", "", textinput.IntRange(quran.MinPage, quran.MaxPage)))
	case keymap.ActionGotoJuz:
		return handler.Handled(m.Popups.ShowTextInput(popupctl.InputGotoJuz,
			"Go to juz (1-30)", "", textinput.IntRange(1, quran.JuzCount)))
	case keymap.ActionGotoSurah:
		return handler.Handled(m.Popups.ShowTextInput(popupctl.InputGotoSurah,
			"Go to surah (1-114)", "", textinput.IntRange(1, quran.ChapterCount)))
	}
	return handler.NotHandled
}

func (m *Model) handlePlaybackKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionPlayPause:
		return handler.Handled(m.togglePlayback())
	case keymap.ActionReset:
		return handler.Handled(m.resetPlayback())
	case keymap.ActionNextVerse:
		return handler.Handled(m.stepVerse(1))
	case keymap.ActionPrevVerse:
		return handler.Handled(m.stepVerse(-1))
	case keymap.ActionFirstVerse:
		return handler.Handled(m.jumpTo(0))
	case keymap.ActionLastVerse:
		if m.page == nil {
			return handler.HandledNoCmd
		}
		return handler.Handled(m.jumpTo(m.page.VerseCount() - 1))
	case keymap.ActionVolumeUp:
		m.setVolume(m.audio.Volume() + volumeStep)
		return handler.HandledNoCmd
	case keymap.ActionVolumeDown:
		m.setVolume(m.audio.Volume() - volumeStep)
		return handler.HandledNoCmd
	case keymap.ActionToggleMute:
		m.audio.SetMuted(!m.audio.Muted())
		m.saveSession()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) handleSequenceKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionCycleMode:
		return handler.Handled(m.setMode(m.driver.State().Mode.Next()))
	case keymap.ActionRepetitionsUp:
		return handler.Handled(m.setRepetitions(m.driver.State().Repetitions + 1))
	case keymap.ActionRepetitionsDown:
		return handler.Handled(m.setRepetitions(m.driver.State().Repetitions - 1))
	case keymap.ActionSetTarget:
		return handler.Handled(m.Popups.ShowTextInput(popupctl.InputRepetitions,
			"Repetitions (1-30)", strconv.Itoa(m.driver.State().Repetitions),
			textinput.IntRange(1, sequence.MaxRepetitions)))
	case keymap.ActionSetReciter:
		return handler.Handled(m.Popups.ShowTextInput(popupctl.InputReciter,
			"Reciter (quran.com recitation id)", strconv.Itoa(m.driver.State().Reciter),
			textinput.IntRange(1, maxReciterID)))
	}
	return handler.NotHandled
}

func (m *Model) handlePageKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionNextPage:
		return handler.Handled(m.stepPage(1))
	case keymap.ActionToggleMemorized:
		return handler.Handled(m.toggleMemorized())
	case keymap.ActionPrevPage:
		return handler.Handled(m.stepPage(-1))
	}
	return handler.NotHandled
}

// handleCursorKeys forwards selection keys to the verse panel. Enter and s make
// the panel emit a jump action.
func (m *Model) handleCursorKeys(a keymap.Action, msg tea.KeyMsg) handler.Result {
	switch a {
	case keymap.ActionMoveUp, keymap.ActionMoveDown, keymap.ActionStartHere, keymap.ActionStartOver:
		var cmd tea.Cmd
		m.VersePanel, cmd = m.VersePanel.Update(msg)
		return handler.Handled(cmd)
	}
	return handler.NotHandled
}

// setVolume clamps level to [0, 1] and unmutes.
func (m *Model) setVolume(level float64) {
	level = min(max(level, 0), 1)
	m.audio.SetVolume(level)
	if m.audio.Muted() && level > 0 {
		m.audio.SetMuted(false)
	}
	m.saveSession()
}
