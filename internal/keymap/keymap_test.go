package keymap

import (
	"slices"
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		min     int
	}{
		{"global", 5},
		{"playback", 5},
		{"sequence", 3},
		{"page", 2},
		{"cursor", 2},
		{"unknown", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := ByContext(tt.context)
		if tt.min == 0 && len(got) != 0 {
			t.Errorf("ByContext(%q) = %d bindings, want none", tt.context, len(got))
		}
		if len(got) < tt.min {
			t.Errorf("ByContext(%q) = %d bindings, want at least %d", tt.context, len(got), tt.min)
		}
		for _, b := range got {
			if b.Context != tt.context {
				t.Errorf("ByContext(%q) returned a %q binding", tt.context, b.Context)
			}
		}
	}
}

func TestBindings_TrainerActions(t *testing.T) {
	var actions []Action
	for _, b := range Bindings {
		actions = append(actions, b.Action)
	}
	for _, a := range []Action{
		ActionPlayPause, ActionReset, ActionNextVerse, ActionPrevVerse, ActionStartHere, ActionStartOver,
		ActionCycleMode, ActionRepetitionsUp, ActionRepetitionsDown, ActionSetReciter,
		ActionNextPage, ActionPrevPage, ActionGotoPage, ActionGotoJuz, ActionGotoSurah, ActionToggleMemorized,
	} {
		if !slices.Contains(actions, a) {
			t.Errorf("no key bound to %q", a)
		}
	}
}

func TestBindings_Complete(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" || len(b.Keys) == 0 || b.Description == "" {
			t.Errorf("binding %d (%q) is missing its action, keys or description", i, b.Action)
		}
		if !slices.Contains(Contexts, b.Context) {
			t.Errorf("binding %d (%q) has unknown context %q", i, b.Action, b.Context)
		}
	}
}
