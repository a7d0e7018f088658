package headerbar

import (
	"strings"
	"testing"

	"github.com/llehouerou/hifdh/internal/sequence"
	"github.com/llehouerou/hifdh/internal/ui/testutil"
)

func TestRender_TooNarrow(t *testing.T) {
	if got := Render(Info{Page: 1}, 10); got != "" {
		t.Errorf("Render() = %q, want empty for narrow width", got)
	}
}

func TestRender_ShowsPageAndModes(t *testing.T) {
	info := Info{Page: 2, Juz: 1, Surah: "Al-Baqarah", FirstKey: "2:1", LastKey: "2:5", Mode: sequence.ModeVerse}
	out := testutil.StripANSI(Render(info, 120))

	for _, want := range []string{"hifdh", "Hifdh", "Verse", "Full page", "Page 2 · Juz 1 · Al-Baqarah · 2:1–2:5"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q: %q", want, out)
		}
	}
	if w := testutil.MeasureWidth(out); w > 120 {
		t.Errorf("header width %d exceeds 120", w)
	}
}

func TestRender_Centered(t *testing.T) {
	out := testutil.StripANSI(Render(Info{Mode: sequence.ModeHifdh}, 100))
	if !strings.HasPrefix(out, " ") {
		t.Errorf("header should be left padded: %q", out)
	}
	if strings.Contains(out, "Page") {
		t.Errorf("header without page shows page label: %q", out)
	}
}

func TestRender_DropsSectionsWhenNarrow(t *testing.T) {
	info := Info{Page: 604, Juz: 30, Surah: "Al-Ikhlas", FirstKey: "112:1", LastKey: "114:6"}
	out := testutil.StripANSI(Render(info, 40))
	if strings.Contains(out, "Page 604") {
		t.Errorf("page label should be dropped at width 40: %q", out)
	}
	if !strings.Contains(out, "hifdh") {
		t.Errorf("app name should always be shown: %q", out)
	}
	if w := testutil.MeasureWidth(out); w > 40 {
		t.Errorf("header width %d exceeds 40", w)
	}
}

func TestPageLabel(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Page: 1, Juz: 1, Surah: "Al-Fatihah", FirstKey: "1:1", LastKey: "1:7"}, "Page 1 · Juz 1 · Al-Fatihah · 1:1–1:7"},
		{Info{Page: 5}, "Page 5"},
		{Info{Page: 5, FirstKey: "2:30", LastKey: "2:30"}, "Page 5 · 2:30"},
		{Info{Page: 6, Memorized: true}, "Page 6 · ♥ memorized"},
	}
	for _, tt := range tests {
		if got := pageLabel(tt.info); got != tt.want {
			t.Errorf("pageLabel(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}
