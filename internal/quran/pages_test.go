package quran

import (
	"errors"
	"testing"
)

func TestValidatePage(t *testing.T) {
	tests := []struct {
		page    int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{302, false},
		{604, false},
		{605, true},
		{-3, true},
	}
	for _, tt := range tests {
		err := ValidatePage(tt.page)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePage(%d) = %v, wantErr %v", tt.page, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("ValidatePage(%d) = %v, want ErrPageOutOfRange", tt.page, err)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0); got != MinPage {
		t.Errorf("ClampPage(0) = %d", got)
	}
	if got := ClampPage(700); got != MaxPage {
		t.Errorf("ClampPage(700) = %d", got)
	}
	if got := ClampPage(50); got != 50 {
		t.Errorf("ClampPage(50) = %d", got)
	}
}

func TestJuzStartPage(t *testing.T) {
	tests := []struct {
		juz  int
		want int
	}{
		{1, 1},
		{2, 22},
		{15, 282},
		{30, 582},
	}
	for _, tt := range tests {
		got, err := JuzStartPage(tt.juz)
		if err != nil {
			t.Fatalf("JuzStartPage(%d): %v", tt.juz, err)
		}
		if got != tt.want {
			t.Errorf("JuzStartPage(%d) = %d, want %d", tt.juz, got, tt.want)
		}
	}

	for _, juz := range []int{0, 31} {
		if _, err := JuzStartPage(juz); !errors.Is(err, ErrJuzOutOfRange) {
			t.Errorf("JuzStartPage(%d) err = %v, want ErrJuzOutOfRange", juz, err)
		}
	}
}

func TestJuzOfPage(t *testing.T) {
	tests := []struct {
		page int
		want int
	}{
		{1, 1},
		{21, 1},
		{22, 2},
		{300, 15},
		{604, 30},
	}
	for _, tt := range tests {
		if got := JuzOfPage(tt.page); got != tt.want {
			t.Errorf("JuzOfPage(%d) = %d, want %d", tt.page, got, tt.want)
		}
	}
}

func TestParseVerseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    VerseKey
		wantErr bool
	}{
		{"2:255", VerseKey{2, 255}, false},
		{" 1:1 ", VerseKey{1, 1}, false},
		{"114:6", VerseKey{114, 6}, false},
		{"115:1", VerseKey{}, true},
		{"0:1", VerseKey{}, true},
		{"2:0", VerseKey{}, true},
		{"2-255", VerseKey{}, true},
		{"a:b", VerseKey{}, true},
		{"", VerseKey{}, true},
	}
	for _, tt := range tests {
		got, err := ParseVerseKey(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidVerseKey) {
				t.Errorf("ParseVerseKey(%q) err = %v, want ErrInvalidVerseKey", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVerseKey(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVerseKey(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String() = %q", got.String())
		}
	}
}

func TestVerseKey_Compare(t *testing.T) {
	a := VerseKey{2, 10}
	b := VerseKey{2, 9}
	c := VerseKey{3, 1}
	if a.Compare(b) <= 0 {
		t.Error("2:10 should sort after 2:9")
	}
	if a.Compare(c) >= 0 {
		t.Error("2:10 should sort before 3:1")
	}
	if a.Compare(a) != 0 {
		t.Error("key should equal itself")
	}
}

func TestPage_Accessors(t *testing.T) {
	p := &Page{Number: 3, Verses: []Verse{
		{Index: 0, Key: "2:6", AudioURL: "a"},
		{Index: 1, Key: "2:7"},
	}}
	if p.ID() != 3 || p.VerseCount() != 2 {
		t.Errorf("ID/VerseCount = %d/%d", p.ID(), p.VerseCount())
	}
	if p.FirstKey() != "2:6" || p.LastKey() != "2:7" {
		t.Errorf("range = %s..%s", p.FirstKey(), p.LastKey())
	}
	if v, ok := p.Verse(1); !ok || v.HasAudio() {
		t.Errorf("Verse(1) = %+v, %v", v, ok)
	}
	if _, ok := p.Verse(2); ok {
		t.Error("Verse(2) should be out of range")
	}

	empty := &Page{Number: 1}
	if empty.FirstKey() != "" || empty.LastKey() != "" {
		t.Error("empty page has no range")
	}
}
