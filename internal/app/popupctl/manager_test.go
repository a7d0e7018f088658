package popupctl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/state"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/history"
	"github.com/llehouerou/hifdh/internal/ui/textinput"
)

func newManager() *Manager {
	m := New()
	m.SetSize(100, 40)
	return m
}

func TestActivePopup_Priority(t *testing.T) {
	m := newManager()
	if m.ActivePopup() != None {
		t.Fatalf("ActivePopup() = %v, want None", m.ActivePopup())
	}

	m.ShowHistory(nil, history.Summary{})
	if m.ActivePopup() != History {
		t.Errorf("ActivePopup() = %v, want History", m.ActivePopup())
	}

	m.ShowTextInput(InputGotoPage, "Go to page", "", nil)
	if m.ActivePopup() != TextInput {
		t.Errorf("ActivePopup() = %v, want TextInput above History", m.ActivePopup())
	}

	m.ShowError("boom")
	if m.ActivePopup() != Error {
		t.Errorf("ActivePopup() = %v, want Error above everything", m.ActivePopup())
	}
}

func TestHide(t *testing.T) {
	m := newManager()
	m.ShowTextInput(InputRepetitions, "Repetitions", "5", nil)
	if m.InputMode() != InputRepetitions {
		t.Fatalf("InputMode() = %v, want InputRepetitions", m.InputMode())
	}

	m.Hide(TextInput)
	if m.IsVisible(TextInput) {
		t.Error("text input still visible after Hide")
	}
	if m.InputMode() != InputNone {
		t.Errorf("InputMode() = %v, want InputNone", m.InputMode())
	}

	m.ShowError("x")
	m.Hide(Error)
	if m.ErrorMsg() != "" {
		t.Errorf("ErrorMsg() = %q after Hide", m.ErrorMsg())
	}
}

func TestHandleKey_ErrorDismissedByAnyKey(t *testing.T) {
	m := newManager()
	m.ShowError("network down")

	handled, cmd := m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if !handled {
		t.Error("key should be consumed by the error popup")
	}
	if cmd != nil {
		t.Error("dismissing an error should not produce a command")
	}
	if m.IsVisible(Error) {
		t.Error("error popup should be dismissed")
	}
}

func TestHandleKey_NoPopup(t *testing.T) {
	m := newManager()
	handled, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if handled {
		t.Error("key should not be handled without a popup")
	}
}

func TestHandleKey_TextInputCarriesMode(t *testing.T) {
	m := newManager()
	m.ShowTextInput(InputGotoJuz, "Go to juz", "", textinput.IntRange(1, 30))

	m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	handled, cmd := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled || cmd == nil {
		t.Fatal("enter should submit the input")
	}

	msg, ok := cmd().(action.Msg)
	if !ok {
		t.Fatalf("expected action.Msg, got %T", cmd())
	}
	res, ok := msg.Action.(textinput.Result)
	if !ok {
		t.Fatalf("expected textinput.Result, got %T", msg.Action)
	}
	if res.Text != "3" {
		t.Errorf("Text = %q, want 3", res.Text)
	}
	if res.Context != InputGotoJuz {
		t.Errorf("Context = %v, want InputGotoJuz", res.Context)
	}
}

func TestRenderOverlay(t *testing.T) {
	m := newManager()
	base := strings.Repeat(strings.Repeat(".", 100)+"\n", 39) + strings.Repeat(".", 100)

	if got := m.RenderOverlay(base); got != base {
		t.Error("overlay without popups should return the base unchanged")
	}

	m.ShowHistory([]state.Completion{{Page: 4, Mode: "hifdh", Repetitions: 5}}, history.Summary{Completed: 1})
	out := m.RenderOverlay(base)
	if !strings.Contains(out, "History") {
		t.Error("history popup title missing from overlay")
	}

	m.ShowError("cannot reach server")
	out = m.RenderOverlay(base)
	if !strings.Contains(out, "cannot reach server") {
		t.Error("error message missing from overlay")
	}
}
