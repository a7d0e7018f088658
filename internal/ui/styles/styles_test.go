package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestGradient_PreservesText(t *testing.T) {
	th := T()
	for _, text := range []string{"", "h", "hifdh", "بِسْمِ", "━━━━━━━━"} {
		for _, bold := range []bool{false, true} {
			out := Gradient(text, th.Primary, th.Secondary, bold)
			if got := ansi.Strip(out); got != text {
				t.Errorf("Gradient(%q, bold=%v) stripped = %q", text, bold, got)
			}
			if w := lipgloss.Width(out); w != lipgloss.Width(text) {
				t.Errorf("Gradient(%q) width = %d, want %d", text, w, lipgloss.Width(text))
			}
		}
	}
}

func TestBlend(t *testing.T) {
	th := T()
	colors := blend(5, th.Primary, th.Secondary)
	if len(colors) != 5 {
		t.Fatalf("blend returned %d colors, want 5", len(colors))
	}
	if colors[0] == colors[4] {
		t.Error("gradient ends should differ")
	}
	if got := blend(1, th.Primary, th.Secondary); len(got) != 1 {
		t.Errorf("blend(1) = %v, want one color", got)
	}
	if blend(0, th.Primary, th.Secondary) != nil {
		t.Error("blend(0) should be nil")
	}
}

func TestBlend_AnsiFallsBackToNeutral(t *testing.T) {
	got := blend(2, lipgloss.Color("5"), lipgloss.Color("12"))
	if len(got) != 2 || got[0] != got[1] {
		t.Errorf("blend of ANSI colors = %v, want two identical neutral colors", got)
	}
}

func TestPanelStyle(t *testing.T) {
	th := T()
	if got := PanelStyle(true).GetBorderTopForeground(); got != th.BorderFocus {
		t.Errorf("focused border = %v, want %v", got, th.BorderFocus)
	}
	if got := PanelStyle(false).GetBorderTopForeground(); got != th.Border {
		t.Errorf("unfocused border = %v, want %v", got, th.Border)
	}
}

func TestStylesCached(t *testing.T) {
	if T().S() != T().S() {
		t.Error("S() should return the same styles instance")
	}
}
