package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMessage(t *testing.T) {
	out := ansi.Strip(Message("Error", "Page 605: out of range", "Press any key to dismiss", 80, 20))
	for _, want := range []string{"Error", "Page 605: out of range", "Press any key"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n") + 1; n != 20 {
		t.Errorf("message spans %d lines, want the screen height 20", n)
	}
}

func TestMessage_TruncatesLongLines(t *testing.T) {
	body := strings.Repeat("بسم ", 30)
	out := Message("Error", body, "esc", 40, 10)

	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 40 {
			t.Errorf("line width %d exceeds screen: %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(out), "…") {
		t.Errorf("truncated line should end with an ellipsis:\n%s", ansi.Strip(out))
	}
}

func TestCenter(t *testing.T) {
	lines := strings.Split(Center("ab\ncd", 10, 6), "\n")
	if len(lines) != 6 {
		t.Fatalf("centered output has %d lines, want 6", len(lines))
	}
	if lines[2] != "    ab    " {
		t.Errorf("content line = %q, want it centered", lines[2])
	}
}

func TestBox_AutoFit(t *testing.T) {
	out := ansi.Strip(Box("hello", 40, 12, SizeAuto))
	if !strings.Contains(out, "hello") || !strings.Contains(out, "╭") {
		t.Errorf("box = \n%s", out)
	}
}

func TestBox_Percent(t *testing.T) {
	out := ansi.Strip(Box("x", 100, 40, SizeLarge))
	top := ""
	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, "╭") {
			top = strings.TrimSpace(line)
			break
		}
	}
	if w := ansi.StringWidth(top); w != 80 {
		t.Errorf("box width = %d, want 80", w)
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		overlay string
		width   int
		want    string
	}{
		{
			name:    "middle of a line",
			base:    "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc",
			overlay: "\n   XYZ",
			width:   10,
			want:    "aaaaaaaaaa\nbbbXYZbbbb\ncccccccccc",
		},
		{
			name:    "short base padded",
			base:    "ab",
			overlay: "    Z",
			width:   6,
			want:    "ab  Z ",
		},
		{
			name:    "reaches the right edge",
			base:    "abcdef",
			overlay: "    YZ",
			width:   6,
			want:    "abcdYZ",
		},
		{
			name:    "overlay taller than base",
			base:    "ab",
			overlay: "X\nY",
			width:   2,
			want:    "Xb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compose(tt.base, tt.overlay, tt.width); got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}
