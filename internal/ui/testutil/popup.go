package testutil

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/ui/popup"
)

// PopupHarness drives a popup the way the app does and records the commands
// it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and keeps its Init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// Popup returns the wrapped popup, as last returned by Update.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

func (h *PopupHarness) SetSize(width, height int) { h.popup.SetSize(width, height) }

func (h *PopupHarness) View() string { return h.popup.View() }

// Send delivers msg to the popup.
func (h *PopupHarness) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.record(cmd)
}

// SendKey types the runes of key.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

// SendSpecialKey presses a non-rune key such as tea.KeyBackspace.
func (h *PopupHarness) SendSpecialKey(k tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: k})
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.SendSpecialKey(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.SendSpecialKey(tea.KeyEscape) }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.SendSpecialKey(tea.KeyUp) }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.SendSpecialKey(tea.KeyDown) }
func (h *PopupHarness) SendTab() tea.Cmd    { return h.SendSpecialKey(tea.KeyTab) }

// LastCommand returns the most recent non-nil command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands forgets the recorded commands.
func (h *PopupHarness) ClearCommands() { h.cmds = nil }

// ExpectView fails the test unless the plain-text view contains substr.
func (h *PopupHarness) ExpectView(t testing.TB, substr string) {
	t.Helper()
	if view := StripANSI(h.View()); !strings.Contains(view, substr) {
		t.Errorf("view does not contain %q:\n%s", substr, view)
	}
}

// ExpectNotInView fails the test if the plain-text view contains substr.
func (h *PopupHarness) ExpectNotInView(t testing.TB, substr string) {
	t.Helper()
	if view := StripANSI(h.View()); strings.Contains(view, substr) {
		t.Errorf("view unexpectedly contains %q:\n%s", substr, view)
	}
}

// ExecuteCmd runs cmd and returns its message, or nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
