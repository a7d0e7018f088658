package textinput

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/testutil"
)

func open(initial string, context any, validate ValidateFunc) *testutil.PopupHarness {
	m := New()
	m.Start("Go to page", initial, context, validate, 80, 24)
	return testutil.NewPopupHarness(&m)
}

func result(t *testing.T, h *testutil.PopupHarness) Result {
	t.Helper()
	cmd := h.LastCommand()
	if cmd == nil {
		t.Fatal("no command emitted")
	}
	msg, ok := testutil.ExecuteCmd(cmd).(action.Msg)
	if !ok {
		t.Fatalf("command produced %T, want action.Msg", testutil.ExecuteCmd(cmd))
	}
	r, ok := msg.Action.(Result)
	if !ok {
		t.Fatalf("action is %T, want Result", msg.Action)
	}
	return r
}

// key is either runes to type or a special key.
type key struct {
	runes string
	typ   tea.KeyType
}

func press(h *testutil.PopupHarness, keys []key) {
	for _, k := range keys {
		if k.runes != "" {
			h.SendKey(k.runes)
			continue
		}
		h.SendSpecialKey(k.typ)
	}
}

func TestTextInput_Submit(t *testing.T) {
	backspace := key{typ: tea.KeyBackspace}
	tests := []struct {
		name    string
		initial string
		keys    []key
		want    string
	}{
		{"typed", "", []key{{runes: "4"}, {runes: "2"}}, "42"},
		{"initial text kept", "300", nil, "300"},
		{"appended to initial", "30", []key{{runes: "1"}}, "301"},
		{"backspace", "604", []key{backspace, backspace}, "6"},
		{"backspace on empty", "", []key{backspace, backspace}, ""},
		{"tab ignored", "", []key{{runes: "1"}, {typ: tea.KeyTab}, {runes: "2"}}, "12"},
		{"surrounding spaces trimmed", "", []key{{runes: " 7 "}}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := open(tt.initial, "page", nil)
			press(h, tt.keys)
			h.SendEnter()

			r := result(t, h)
			if r.Canceled || r.Text != tt.want {
				t.Errorf("result = %+v, want text %q", r, tt.want)
			}
			if r.Context != "page" {
				t.Errorf("Context = %v, want page", r.Context)
			}
		})
	}
}

func TestTextInput_Cancel(t *testing.T) {
	h := open("12", "reciter", nil)
	h.SendEscape()

	r := result(t, h)
	if !r.Canceled || r.Context != "reciter" {
		t.Errorf("result = %+v, want canceled with context reciter", r)
	}
}

func TestTextInput_View(t *testing.T) {
	h := open("", nil, nil)
	h.SendKey("77")

	h.ExpectView(t, "Go to page")
	h.ExpectView(t, "> 77")
	h.ExpectView(t, "Enter: confirm")
}

func TestTextInput_ViewNeedsSize(t *testing.T) {
	m := New()
	m.Start("Go to page", "", nil, nil, 0, 0)
	if v := m.View(); v != "" {
		t.Errorf("View() = %q, want empty without a size", v)
	}
}

func TestTextInput_ResetClearsTitle(t *testing.T) {
	m := New()
	m.Start("Go to page", "5", nil, nil, 80, 24)
	m.Reset()

	h := testutil.NewPopupHarness(&m)
	h.ExpectNotInView(t, "Go to page")
}

func TestTextInput_ValidationBlocksSubmit(t *testing.T) {
	h := open("", nil, IntRange(1, 604))
	h.ClearCommands()

	h.SendKey("999")
	if cmd := h.SendEnter(); cmd != nil {
		t.Fatal("out-of-range input was submitted")
	}
	h.ExpectView(t, "999 is not between 1 and 604")

	h.SendSpecialKey(tea.KeyBackspace)
	h.ExpectNotInView(t, "is not between")
	h.SendEnter()

	if r := result(t, h); r.Text != "99" {
		t.Errorf("Text = %q, want 99", r.Text)
	}
}

func TestIntRange(t *testing.T) {
	valid := IntRange(1, 30)
	tests := []struct {
		in string
		ok bool
	}{
		{"1", true},
		{"30", true},
		{" 7 ", true},
		{"0", false},
		{"31", false},
		{"x", false},
		{"", false},
	}
	for _, tt := range tests {
		if err := valid(tt.in); (err == nil) != tt.ok {
			t.Errorf("IntRange(1, 30)(%q) = %v, want ok=%v", tt.in, err, tt.ok)
		}
	}
}
