package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/keymap"
)

func TestResults(t *testing.T) {
	if NotHandled.Handled || NotHandled.Cmd != nil {
		t.Error("NotHandled should be the zero Result")
	}
	if !HandledNoCmd.Handled || HandledNoCmd.Cmd != nil {
		t.Error("HandledNoCmd should be handled without command")
	}
	cmd := func() tea.Msg { return "test" }
	if r := Handled(cmd); !r.Handled || r.Cmd == nil {
		t.Error("Handled(cmd) should carry the command")
	}
}

func TestChain_EmptyAction(t *testing.T) {
	called := false
	h := func(keymap.Action) Result {
		called = true
		return HandledNoCmd
	}

	handled, _ := Chain("", h)
	if handled {
		t.Error("empty action should not be handled")
	}
	if called {
		t.Error("handlers should not run for an unbound key")
	}
}

func TestChain_PassesAction(t *testing.T) {
	var got keymap.Action
	h := func(a keymap.Action) Result {
		got = a
		return HandledNoCmd
	}

	Chain(keymap.ActionNextPage, h)
	if got != keymap.ActionNextPage {
		t.Errorf("handler received %q, want %q", got, keymap.ActionNextPage)
	}
}

func TestChain_Order(t *testing.T) {
	testCmd := func() tea.Msg { return "middle" }
	var order []int

	h1 := func(keymap.Action) Result {
		order = append(order, 1)
		return NotHandled
	}
	h2 := func(keymap.Action) Result {
		order = append(order, 2)
		return Handled(testCmd)
	}
	h3 := func(keymap.Action) Result {
		order = append(order, 3)
		return HandledNoCmd
	}

	handled, cmd := Chain(keymap.ActionPlayPause, h1, h2, h3)
	if !handled {
		t.Error("Chain should return handled=true")
	}
	if cmd == nil {
		t.Error("Chain should return the command from h2")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("call order = %v, want [1 2]", order)
	}
}

func TestChain_NoneHandles(t *testing.T) {
	calls := 0
	h := func(keymap.Action) Result {
		calls++
		return NotHandled
	}

	handled, cmd := Chain(keymap.ActionQuit, h, h, h)
	if handled || cmd != nil {
		t.Error("Chain should report not handled")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}
