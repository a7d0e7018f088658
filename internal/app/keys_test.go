package app

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifdh/internal/app/popupctl"
	"github.com/llehouerou/hifdh/internal/playback"
	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/action"
	"github.com/llehouerou/hifdh/internal/ui/helpbindings"
	"github.com/llehouerou/hifdh/internal/ui/playerbar"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeys_Quit(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)
	saves := env.state.SaveCount()

	_, cmd := update(t, m, key("q"))

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if env.state.SaveCount() != saves+1 {
		t.Error("session should be saved on quit")
	}
}

func TestKeys_Sequence(t *testing.T) {
	tests := []struct {
		second string
		mode   popupctl.InputMode
	}{
		{"p", popupctl.InputGotoPage},
		{"j", popupctl.InputGotoJuz},
		{"s", popupctl.InputGotoSurah},
		{"r", popupctl.InputRepetitions},
	}
	for _, tt := range tests {
		t.Run("g "+tt.second, func(t *testing.T) {
			env := newTestEnv(t)
			m := env.loaded(t)

			m, cmd := update(t, m, key("g"))
			if m.PendingKeys != "g" {
				t.Fatalf("PendingKeys = %q, want g", m.PendingKeys)
			}
			if cmd == nil {
				t.Error("expected sequence timeout")
			}

			m, _ = update(t, m, key(tt.second))
			if m.PendingKeys != "" {
				t.Errorf("PendingKeys = %q, want empty", m.PendingKeys)
			}
			if !m.Popups.IsVisible(popupctl.TextInput) {
				t.Fatal("text input not shown")
			}
			if m.Popups.InputMode() != tt.mode {
				t.Errorf("InputMode = %v, want %v", m.Popups.InputMode(), tt.mode)
			}
		})
	}
}

func TestKeys_SequenceTimeout(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	m, _ = update(t, m, key("g"))
	m, _ = update(t, m, KeySequenceTimeoutMsg{})
	if m.PendingKeys != "" {
		t.Errorf("PendingKeys = %q, want empty", m.PendingKeys)
	}

	m, _ = update(t, m, key("p"))
	if m.Popups.IsVisible(popupctl.TextInput) {
		t.Error("p alone should not open the page input")
	}
}

func TestKeys_Help(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	m, _ = update(t, m, key("?"))
	if !m.Popups.IsVisible(popupctl.Help) {
		t.Fatal("help not shown")
	}

	m, _ = update(t, m, action.Msg{Source: "helpbindings", Action: helpbindings.Close{}})
	if m.Popups.IsVisible(popupctl.Help) {
		t.Error("help should be hidden")
	}
}

func TestKeys_PopupTakesKeys(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)
	m, _ = update(t, m, key("?"))

	m, _ = update(t, m, key("m"))

	if env.driver.State().Mode != sequence.ModeHifdh {
		t.Error("keys should go to the popup, not change the mode")
	}
}

func TestKeys_PlayPause(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	m, _ = update(t, m, key("space"))
	if env.driver.State().Status != playback.StatusPlaying {
		t.Fatalf("status = %v, want playing", env.driver.State().Status)
	}
	if url := waitStarted(t, env); url != clipURL(1, 0, testReciter) {
		t.Errorf("started %q", url)
	}

	m, _ = update(t, m, key("space"))
	if env.driver.State().Status != playback.StatusPaused {
		t.Errorf("status = %v, want paused", env.driver.State().Status)
	}
	if m.playback.Status != playback.StatusPaused {
		t.Errorf("model status = %v, want paused", m.playback.Status)
	}
}

func TestKeys_PlayWithoutPage(t *testing.T) {
	env := newTestEnv(t)
	m := env.model(t)

	_, cmd := update(t, m, key("space"))

	if cmd != nil || env.driver.State().Status != playback.StatusIdle {
		t.Error("nothing to play before the page loads")
	}
}

func TestKeys_VerseNavigation(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	steps := []struct {
		key  string
		want int
	}{
		{"n", 1},
		{"n", 2},
		{"b", 1},
		{"end", 4},
		{"n", 4},
		{"home", 0},
		{"b", 0},
		{"end", 4},
		{"r", 0},
	}
	for _, s := range steps {
		m, _ = update(t, m, key(s.key))
		if got := env.driver.State().Verse; got != s.want {
			t.Fatalf("after %q verse = %d, want %d", s.key, got, s.want)
		}
		if m.playback.Verse != s.want {
			t.Fatalf("after %q model verse = %d, want %d", s.key, m.playback.Verse, s.want)
		}
	}
	if env.driver.State().Status != playback.StatusIdle {
		t.Errorf("status = %v, navigation should not play", env.driver.State().Status)
	}
}

func TestKeys_Repetitions(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	steps := []struct {
		key  string
		want int
	}{
		{"+", 3},
		{"=", 4},
		{"-", 3},
		{"-", 2},
		{"-", 1},
		{"-", 1},
	}
	for _, s := range steps {
		m, _ = update(t, m, key(s.key))
		if got := env.driver.State().Repetitions; got != s.want {
			t.Fatalf("after %q repetitions = %d, want %d", s.key, got, s.want)
		}
	}
	if m.playback.Repetitions != 1 {
		t.Errorf("model repetitions = %d, want 1", m.playback.Repetitions)
	}
}

func TestKeys_CycleMode(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	want := []sequence.Mode{sequence.ModeVerse, sequence.ModeFullPage, sequence.ModeHifdh}
	for _, w := range want {
		m, _ = update(t, m, key("m"))
		if got := env.driver.State().Mode; got != w {
			t.Fatalf("mode = %v, want %v", got, w)
		}
	}
}

func TestKeys_Volume(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)
	env.audio.SetVolume(0.5)
	env.audio.SetMuted(true)

	m, _ = update(t, m, key("]"))
	if math.Abs(env.audio.Volume()-0.55) > 1e-9 {
		t.Errorf("volume = %v, want 0.55", env.audio.Volume())
	}
	if env.audio.Muted() {
		t.Error("raising the volume should unmute")
	}

	env.audio.SetVolume(0.02)
	m, _ = update(t, m, key("["))
	if env.audio.Volume() != 0 {
		t.Errorf("volume = %v, want 0", env.audio.Volume())
	}

	env.audio.SetVolume(0.98)
	m, _ = update(t, m, key("]"))
	if env.audio.Volume() != 1 {
		t.Errorf("volume = %v, want 1", env.audio.Volume())
	}

	_, _ = update(t, m, key("M"))
	if !env.audio.Muted() {
		t.Error("M should mute")
	}
	s, _ := env.state.GetSession()
	if s == nil || !s.Muted {
		t.Error("mute should be saved")
	}
}

func TestKeys_PlayerBarToggle(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	m, _ = update(t, m, key("v"))
	if m.PlayerDisplayMode != playerbar.ModeCompact {
		t.Errorf("mode = %v, want compact", m.PlayerDisplayMode)
	}

	m, _ = update(t, m, key("v"))
	if m.PlayerDisplayMode != playerbar.ModeExpanded {
		t.Errorf("mode = %v, want expanded", m.PlayerDisplayMode)
	}
}

func TestKeys_ReciterInput(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	m, _ = update(t, m, key("R"))

	if m.Popups.InputMode() != popupctl.InputReciter {
		t.Errorf("InputMode = %v, want reciter", m.Popups.InputMode())
	}
}

func TestKeys_UnboundIgnored(t *testing.T) {
	env := newTestEnv(t)
	m := env.loaded(t)

	_, cmd := update(t, m, key("z"))

	if cmd != nil {
		t.Error("unbound key should do nothing")
	}
}
