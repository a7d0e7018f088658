package history

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/testutil"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testEntries() []state.Completion {
	return []state.Completion{
		{ID: "c3", Page: 3, Mode: "hifdh", Repetitions: 5, CompletedAt: now.Add(-2 * time.Hour)},
		{ID: "c2", Page: 2, Mode: "fullpage", Repetitions: 3, MissingAudio: 1, Failures: 1, CompletedAt: now.Add(-26 * time.Hour)},
		{ID: "c1", Page: 1, Mode: "verse", Repetitions: 10, CompletedAt: now.Add(-10 * 24 * time.Hour)},
	}
}

func newPopup(entries []state.Completion, completed int) *Model {
	m := New(entries, Summary{Completed: completed})
	m.now = func() time.Time { return now }
	m.SetSize(80, 30)
	return m
}

func TestView_Empty(t *testing.T) {
	h := testutil.NewPopupHarness(newPopup(nil, 0))
	h.SetSize(80, 30)
	h.ExpectView(t, "No page completed yet")
	h.ExpectView(t, "0 / 604 pages memorized (0.0%) · 0 completed")
}

func TestView_Entries(t *testing.T) {
	m := newPopup(testEntries(), 3)
	out := testutil.StripANSI(m.View())

	for _, want := range []string{
		"3 completed",
		"Page 3", "Hifdh", "×5", "2 hours ago",
		"Page 2", "Full page", "1 day ago", "(2 skipped)",
		"Page 1", "Verse", "×10", "1 week ago",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("history view missing %q:\n%s", want, out)
		}
	}
}

func TestView_MemorizedShare(t *testing.T) {
	tests := []struct {
		sum  Summary
		want string
	}{
		{Summary{Memorized: 1, Completed: 1}, "1 / 604 pages memorized (0.2%) · 1 completed"},
		{Summary{Memorized: 151, Completed: 300}, "151 / 604 pages memorized (25.0%) · 300 completed"},
		{Summary{Memorized: 604, Completed: 604}, "604 / 604 pages memorized (100.0%)"},
	}
	for _, tt := range tests {
		m := New(testEntries()[:1], tt.sum)
		m.SetSize(100, 30)
		if out := testutil.StripANSI(m.View()); !strings.Contains(out, tt.want) {
			t.Errorf("summary for %+v missing %q:\n%s", tt.sum, tt.want, out)
		}
	}
}

func TestUpdate_Close(t *testing.T) {
	for _, key := range []string{"H", "q"} {
		m := newPopup(testEntries(), 3)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		msg := testutil.ExecuteCmd(cmd)
		am, ok := msg.(action.Msg)
		if !ok {
			t.Fatalf("%s: got %T, want action.Msg", key, msg)
		}
		if _, ok := am.Action.(Close); !ok {
			t.Errorf("%s: action = %T, want Close", key, am.Action)
		}
	}

	h := testutil.NewPopupHarness(newPopup(testEntries(), 3))
	msg := testutil.ExecuteCmd(h.SendEscape())
	if am, ok := msg.(action.Msg); !ok || am.Source != "history" {
		t.Errorf("esc: got %#v", msg)
	}
}

func TestUpdate_EnterOpensSelectedPage(t *testing.T) {
	h := testutil.NewPopupHarness(newPopup(testEntries(), 3))
	h.SetSize(80, 30)
	h.SendDown()

	msg := testutil.ExecuteCmd(h.SendEnter())
	am, ok := msg.(action.Msg)
	if !ok {
		t.Fatalf("got %T, want action.Msg", msg)
	}
	g, ok := am.Action.(GotoPage)
	if !ok {
		t.Fatalf("action = %T, want GotoPage", am.Action)
	}
	if g.Page != 2 {
		t.Errorf("GotoPage.Page = %d, want 2", g.Page)
	}
}

func TestUpdate_EnterOnEmptyList(t *testing.T) {
	m := newPopup(nil, 0)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("enter on empty history should do nothing")
	}
}

func TestSelected(t *testing.T) {
	m := newPopup(testEntries(), 3)
	c, ok := m.Selected()
	if !ok || c.ID != "c3" {
		t.Errorf("Selected() = %+v, %v; want newest entry", c, ok)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if c, _ := m.Selected(); c.ID != "c1" {
		t.Errorf("Selected() = %s, want c1 clamped at the end", c.ID)
	}

	if _, ok := newPopup(nil, 0).Selected(); ok {
		t.Error("Selected() on empty history should report false")
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d", m.Len())
	}
}
