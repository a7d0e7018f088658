package versepanel

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/quran"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/testutil"
)

func testPage(n int) *quran.Page {
	p := &quran.Page{Number: 2, Reciter: 7}
	for i := range n {
		p.Verses = append(p.Verses, quran.Verse{
			Index:    i,
			Key:      fmt.Sprintf("2:%d", i+1),
			Surah:    2,
			Ayah:     i + 1,
			Text:     fmt.Sprintf("verse-text-%d", i+1),
			AudioURL: fmt.Sprintf("https://audio.test/2/%d.mp3", i+1),
		})
	}
	return p
}

func newPanel(verses int) Model {
	m := New()
	m.SetSize(60, 10)
	m.SetFocused(true)
	m.SetPage(testPage(verses))
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestView_NoPage(t *testing.T) {
	m := New()
	m.SetSize(40, 6)
	out := testutil.StripANSI(m.View())
	if !strings.Contains(out, "No page loaded") {
		t.Errorf("view without page = %q", out)
	}
}

func TestView_ZeroSize(t *testing.T) {
	m := New()
	if m.View() != "" {
		t.Error("zero-size panel should render nothing")
	}
}

func TestView_HeaderAndVerses(t *testing.T) {
	m := newPanel(5)
	out := testutil.StripANSI(m.View())

	if !strings.Contains(out, "Page 2 (2:1–2:5)") {
		t.Errorf("header missing page range:\n%s", out)
	}
	for _, want := range []string{"2:1", "verse-text-1", "2:5", "verse-text-5"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if n := len(testutil.SplitLines(out)); n != 10 {
		t.Errorf("panel has %d lines, want 10", n)
	}
}

func TestView_MissingAudioCounted(t *testing.T) {
	m := New()
	m.SetSize(60, 10)
	p := testPage(4)
	p.Verses[1].AudioURL = ""
	p.Verses[3].AudioURL = ""
	m.SetPage(p)

	out := testutil.StripANSI(m.View())
	if !strings.Contains(out, "2 without audio") {
		t.Errorf("header should count missing clips:\n%s", out)
	}
}

func TestView_LinesFitWidth(t *testing.T) {
	m := New()
	m.SetSize(30, 8)
	p := testPage(3)
	p.Verses[0].Text = strings.Repeat("بِسْمِ ٱللَّهِ ", 10)
	m.SetPage(p)

	for _, line := range testutil.SplitLines(m.View()) {
		if w := testutil.MeasureWidth(line); w > 30 {
			t.Errorf("line width %d exceeds 30: %q", w, testutil.StripANSI(line))
		}
	}
}

func TestView_MarksSoundingVerse(t *testing.T) {
	m := newPanel(3)
	m.SetState(playback.State{
		Status:       playback.StatusPlaying,
		Mode:         sequence.ModeHifdh,
		PageID:       2,
		TotalVerses:  3,
		Group:        []int{0, 1},
		SegmentVerse: 1,
	})

	line := testutil.FindLine(testutil.StripANSI(m.View()), "2:2")
	if !strings.Contains(line, "▶") && !strings.Contains(line, ">") {
		t.Errorf("sounding verse should be marked: %q", line)
	}
	if !m.inGroup(0) || m.inGroup(2) {
		t.Error("group membership wrong")
	}
}

func TestSetState_FollowsSoundingVerse(t *testing.T) {
	m := newPanel(20)
	m.SetState(playback.State{Status: playback.StatusPlaying, PageID: 2, TotalVerses: 20, SegmentVerse: 12})
	if m.Cursor() != 12 {
		t.Errorf("cursor = %d, want 12 while following", m.Cursor())
	}

	m, _ = m.Update(keyMsg("k"))
	if m.Cursor() != 11 {
		t.Fatalf("cursor = %d after k, want 11", m.Cursor())
	}
	m.SetState(playback.State{Status: playback.StatusPlaying, PageID: 2, TotalVerses: 20, SegmentVerse: 13})
	if m.Cursor() != 11 {
		t.Errorf("cursor = %d, manual move should stop following", m.Cursor())
	}

	m.Follow()
	if m.Cursor() != 13 {
		t.Errorf("cursor = %d after Follow, want 13", m.Cursor())
	}
}

func TestSetState_IdleDoesNotMoveCursor(t *testing.T) {
	m := newPanel(10)
	m.SetCursor(4)
	m.Follow()
	m.SetState(playback.State{Status: playback.StatusIdle, PageID: 2, TotalVerses: 10, SegmentVerse: 0})
	if m.Cursor() != 4 {
		t.Errorf("cursor = %d, idle state should not move it", m.Cursor())
	}
}

func TestUpdate_EnterJumps(t *testing.T) {
	m := newPanel(5)
	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("down"))

	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	msg, ok := cmd().(action.Msg)
	if !ok {
		t.Fatalf("command returned %T, want action.Msg", cmd())
	}
	jump, ok := msg.Action.(JumpToVerse)
	if !ok {
		t.Fatalf("action = %T, want JumpToVerse", msg.Action)
	}
	if jump.Index != 2 || !jump.StartHere {
		t.Errorf("jump = %+v, want index 2 starting here", jump)
	}
	if msg.Source != "versepanel" {
		t.Errorf("source = %q", msg.Source)
	}
}

func TestUpdate_StartOverJumpsFromFirstVerse(t *testing.T) {
	m := newPanel(5)
	m, _ = m.Update(keyMsg("j"))

	_, cmd := m.Update(keyMsg("s"))
	if cmd == nil {
		t.Fatal("s should return a command")
	}
	jump, ok := cmd().(action.Msg).Action.(JumpToVerse)
	if !ok {
		t.Fatal("action is not a JumpToVerse")
	}
	if jump.Index != 1 || jump.StartHere {
		t.Errorf("jump = %+v, want index 1 starting over", jump)
	}
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	m := newPanel(5)
	m.SetFocused(false)
	m, cmd := m.Update(keyMsg("j"))
	if cmd != nil || m.Cursor() != 0 {
		t.Error("unfocused panel should ignore keys")
	}
}

func TestSetPage_ResetsCursor(t *testing.T) {
	m := newPanel(10)
	m.SetCursor(7)
	m.SetPage(testPage(3))
	if m.Cursor() != 0 {
		t.Errorf("cursor = %d after SetPage, want 0", m.Cursor())
	}
	if m.Page().VerseCount() != 3 {
		t.Error("Page() should return the new page")
	}
}

func TestSetCursor_Clamped(t *testing.T) {
	m := newPanel(4)
	m.SetCursor(99)
	if m.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor())
	}
}

func TestJumpToVerse_ActionType(t *testing.T) {
	if (JumpToVerse{}).ActionType() != "versepanel.jump_to_verse" {
		t.Error("unexpected action type")
	}
}
