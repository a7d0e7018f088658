package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/ui/popup"
)

type doneMsg struct{}

// echoPopup shows the last key it received and returns a command on enter.
type echoPopup struct {
	last          string
	width, height int
}

func (e *echoPopup) Init() tea.Cmd { return nil }

func (e *echoPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		e.last = k.String()
		if k.Type == tea.KeyEnter {
			return e, func() tea.Msg { return doneMsg{} }
		}
	}
	return e, nil
}

func (e *echoPopup) View() string { return "last: " + e.last }

func (e *echoPopup) SetSize(w, h int) { e.width, e.height = w, h }

func TestPopupHarness_Keys(t *testing.T) {
	h := NewPopupHarness(&echoPopup{})

	h.SendKey("j")
	h.ExpectView(t, "last: j")

	h.SendUp()
	h.ExpectView(t, "last: up")
	h.ExpectNotInView(t, "last: j")

	if h.LastCommand() != nil {
		t.Error("no command expected before enter")
	}
	h.SendEnter()
	if _, ok := ExecuteCmd(h.LastCommand()).(doneMsg); !ok {
		t.Error("enter should produce doneMsg")
	}

	h.ClearCommands()
	if h.LastCommand() != nil {
		t.Error("commands should be cleared")
	}
}

func TestPopupHarness_SetSize(t *testing.T) {
	h := NewPopupHarness(&echoPopup{})
	h.SetSize(40, 10)

	e := h.Popup().(*echoPopup)
	if e.width != 40 || e.height != 10 {
		t.Errorf("size = %dx%d, want 40x10", e.width, e.height)
	}
}

func TestExecuteCmd_Nil(t *testing.T) {
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should return nil")
	}
}
