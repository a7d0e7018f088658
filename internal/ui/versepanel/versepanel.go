// Package versepanel renders the verses of the loaded page and lets the user
// pick where the sequence starts.
package versepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/ui"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/cursor"
)

// Model represents the verse panel state.
type Model struct {
	ui.Base
	cursor cursor.Cursor
	page   *quran.Page
	state  playback.State

	// follow keeps the cursor on the sounding verse until the user moves it.
	follow bool
}

// New creates an empty verse panel.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin), follow: true}
}

// SetPage replaces the displayed page and moves the cursor to its first verse.
func (m *Model) SetPage(p *quran.Page) {
	m.page = p
	m.state = playback.State{}
	m.cursor.Reset()
	m.follow = true
}

// Page returns the displayed page, or nil.
func (m Model) Page() *quran.Page {
	return m.page
}

// SetState updates the highlighted group and sounding verse.
// While following, the cursor tracks the sounding verse.
func (m *Model) SetState(st playback.State) {
	m.state = st
	if m.follow && st.HasPage() && st.Status.IsActive() {
		m.cursor.Jump(st.SegmentVerse, m.verseCount(), m.listHeight())
	}
}

// Follow makes the cursor track the sounding verse again.
func (m *Model) Follow() {
	m.follow = true
	if m.state.Status.IsActive() {
		m.cursor.Jump(m.state.SegmentVerse, m.verseCount(), m.listHeight())
	}
}

// SetSize sets the panel dimensions and keeps the cursor in view.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.EnsureVisible(m.verseCount(), m.listHeight())
}

// Cursor returns the verse index under the cursor.
func (m Model) Cursor() int {
	return m.cursor.Pos()
}

// SetCursor moves the cursor to verse index and stops following playback.
func (m *Model) SetCursor(index int) {
	m.cursor.Jump(index, m.verseCount(), m.listHeight())
	m.follow = false
}

// Update handles cursor keys. Enter starts the sequence at the cursor verse and
// s starts it over from the first verse.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsFocused() || m.page == nil {
		return m, nil
	}

	key := keyMsg.String()
	if m.cursor.HandleKey(key, m.verseCount(), m.listHeight()) {
		m.follow = false
		return m, nil
	}

	if (key == "enter" || key == "s") && m.verseCount() > 0 {
		m.follow = true
		jump := JumpToVerse{Index: m.cursor.Pos(), StartHere: key == "enter"}
		return m, func() tea.Msg {
			return action.Msg{Source: "versepanel", Action: jump}
		}
	}

	return m, nil
}

func (m Model) verseCount() int {
	if m.page == nil {
		return 0
	}
	return m.page.VerseCount()
}

func (m Model) listHeight() int {
	return max(m.ListHeight(ui.PanelOverhead), 1)
}
