// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/notify"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/history"
)

// historyLimit is the number of completions listed in the history popup.
const historyLimit = 100

// pageLoadOptions says what to do with a page once it is fetched.
type pageLoadOptions struct {
	restore  *sequence.Position // seek the plan here after loading
	autoplay bool               // start playing once loaded
	reciter  bool               // same page for a new reciter: keep the cursor
}

// KeySequenceTimeoutCmd returns a command that sends KeySequenceTimeoutMsg after 300ms.
func KeySequenceTimeoutCmd() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(_ time.Time) tea.Msg {
		return KeySequenceTimeoutMsg{}
	})
}

// WatchDriverEvents returns a command that waits for playback driver events.
// It listens on all subscription channels and converts events to tea.Msg.
func (m Model) WatchDriverEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return DriverStateMsg{Previous: e.Previous, Current: e.Current}
		case e := <-sub.PositionChanged:
			return DriverPositionMsg{State: e.State}
		case d := <-sub.Diagnostics:
			return DriverDiagnosticMsg{Diagnostic: d}
		case <-sub.Done:
			return DriverClosedMsg{}
		}
	}
}

// loadPageCmd fetches page number for reciter.
func (m Model) loadPageCmd(number, reciter int, opts pageLoadOptions, seq int) tea.Cmd {
	pages, timeout := m.pages, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := pages.LoadPage(ctx, number, reciter)
		if err != nil {
			return PageLoadErrorMsg{Seq: seq, Number: number, Err: err}
		}
		return PageLoadedMsg{Seq: seq, Page: page, pageLoadOptions: opts}
	}
}

func loadChaptersCmd(pages PageSource, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		chapters, err := pages.Chapters(ctx)
		return ChaptersLoadedMsg{Chapters: chapters, Err: err}
	}
}

func surahPageCmd(pages PageSource, surah int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := pages.ChapterStartPage(ctx, surah)
		return SurahPageMsg{Surah: surah, Page: page, Err: err}
	}
}

func loadHistoryCmd(mgr state.Interface) tea.Cmd {
	return func() tea.Msg {
		entries, err := mgr.ListCompletions(historyLimit)
		if err != nil {
			return HistoryLoadedMsg{Err: err}
		}
		var sum history.Summary
		if sum.Completed, err = mgr.CompletedPages(); err != nil {
			return HistoryLoadedMsg{Err: err}
		}
		sum.Memorized, err = mgr.MemorizedPages()
		return HistoryLoadedMsg{Entries: entries, Summary: sum, Err: err}
	}
}

// recordCompletionCmd stores a finished page and sends the desktop
// notification. A failed notification is not an error.
func (m Model) recordCompletionCmd(st playback.State) tea.Cmd {
	mgr, notifier, logger := m.stateMgr, m.notifier, m.logger
	return func() tea.Msg {
		c := state.Completion{
			Page:         st.PageID,
			Mode:         st.Mode.String(),
			Repetitions:  st.Repetitions,
			Reciter:      st.Reciter,
			MissingAudio: st.MissingAudio,
			Failures:     st.Failures,
		}
		id, err := mgr.RecordCompletion(c)
		if err != nil {
			return CompletionRecordedMsg{Completion: c, Err: err}
		}
		c.ID = id

		times := 0
		if progress, err := mgr.GetPageProgress(c.Page); err == nil && progress != nil {
			times = progress.Completions
		}

		if notifier != nil {
			n := notify.PageCompleted(notify.Completion{
				Page:        c.Page,
				Mode:        st.Mode.Label(),
				Repetitions: c.Repetitions,
				Times:       times,
				Missing:     c.MissingAudio,
				Failures:    c.Failures,
			})
			if err := notifier.Notify(n); err != nil {
				logger.Debug("desktop notification failed", "err", err)
			}
		}
		return CompletionRecordedMsg{Completion: c, Times: times}
	}
}
