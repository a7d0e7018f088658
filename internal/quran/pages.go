package quran

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Madani mushaf bounds.
const (
	MinPage = 1
	MaxPage = 604

	JuzCount     = 30
	ChapterCount = 114

	// MaxPageVerses bounds the verses of one page with room to spare; the
	// fullest Madani pages hold a little over 40.
	MaxPageVerses = 64
)

var (
	ErrPageOutOfRange    = errors.New("page out of range")
	ErrJuzOutOfRange     = errors.New("juz out of range")
	ErrInvalidVerseKey   = errors.New("invalid verse key")
	ErrChapterOutOfRange = errors.New("chapter out of range")
)

var juzStartPages = [JuzCount]int{
	1, 22, 42, 62, 82, 102, 122, 142, 162, 182,
	202, 222, 242, 262, 282, 302, 322, 342, 362, 382,
	402, 422, 442, 462, 482, 502, 522, 542, 562, 582,
}

// ValidatePage returns ErrPageOutOfRange unless n is a mushaf page.
func ValidatePage(n int) error {
	if n < MinPage || n > MaxPage {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPageOutOfRange, n, MinPage, MaxPage)
	}
	return nil
}

// ClampPage limits n to the mushaf.
func ClampPage(n int) int {
	return min(max(n, MinPage), MaxPage)
}

// JuzStartPage returns the first page of juz (1..30).
func JuzStartPage(juz int) (int, error) {
	if juz < 1 || juz > JuzCount {
		return 0, fmt.Errorf("%w: %d", ErrJuzOutOfRange, juz)
	}
	return juzStartPages[juz-1], nil
}

// JuzOfPage returns the juz a page belongs to.
func JuzOfPage(page int) int {
	juz := 1
	for i, start := range juzStartPages {
		if page >= start {
			juz = i + 1
		}
	}
	return juz
}

// VerseKey identifies a verse as surah:ayah.
type VerseKey struct {
	Surah int
	Ayah  int
}

// ParseVerseKey parses "2:255".
func ParseVerseKey(s string) (VerseKey, error) {
	surah, ayah, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}
	sn, err := strconv.Atoi(surah)
	if err != nil || sn < 1 || sn > ChapterCount {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}
	an, err := strconv.Atoi(ayah)
	if err != nil || an < 1 {
		return VerseKey{}, fmt.Errorf("%w: %q", ErrInvalidVerseKey, s)
	}
	return VerseKey{Surah: sn, Ayah: an}, nil
}

func (k VerseKey) String() string {
	return strconv.Itoa(k.Surah) + ":" + strconv.Itoa(k.Ayah)
}

// Compare orders keys by surah then ayah.
func (k VerseKey) Compare(o VerseKey) int {
	if k.Surah != o.Surah {
		return k.Surah - o.Surah
	}
	return k.Ayah - o.Ayah
}
