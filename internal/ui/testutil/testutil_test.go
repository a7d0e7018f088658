package testutil

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStripANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("2:255")
	if got := StripANSI("\x1b[1m2:255\x1b[0m"); got != "2:255" {
		t.Errorf("StripANSI() = %q, want %q", got, "2:255")
	}
	if got := StripANSI(styled); got != "2:255" {
		t.Errorf("StripANSI(styled) = %q, want %q", got, "2:255")
	}
}

func TestMeasureWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Page 1", 6},
		{"\x1b[31mPage 1\x1b[0m", 6},
		{"- 2:1", 5},
	}
	for _, tt := range tests {
		if got := MeasureWidth(tt.in); got != tt.want {
			t.Errorf("MeasureWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFindLine(t *testing.T) {
	out := "Page 1\n\x1b[1mVerse 2:3\x1b[0m\nJuz 1"
	if got := FindLine(out, "Verse"); got != "Verse 2:3" {
		t.Errorf("FindLine() = %q", got)
	}
	if got := FindLine(out, "Surah"); got != "" {
		t.Errorf("FindLine(missing) = %q, want empty", got)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"single", "a", 1},
		{"blank lines skipped", "a\n\n  \nb", 2},
		{"styled blank skipped", "a\n\x1b[0m  \x1b[0m", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountLines(tt.in); got != tt.want {
				t.Errorf("CountLines() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\n\nb\n\n  \n")
	if len(got) != 3 || got[0] != "a" || got[1] != "" || got[2] != "b" {
		t.Errorf("SplitLines() = %q", got)
	}
}
