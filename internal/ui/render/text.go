// Package render holds text helpers for fixed-width terminal cells.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Sanitize drops control characters other than tab and invalid UTF-8 bytes,
// and turns no-break spaces into plain spaces. API text goes through it
// before it reaches the terminal.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, unclean) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case unclean(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unclean(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Truncate cuts s to width cells and marks the cut with "…". Styling is kept.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// Pad appends spaces until s is width cells wide.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// FitRight truncates s to width cells and right-aligns it, for text that
// reads right to left.
func FitRight(s string, width int) string {
	s = Truncate(s, width)
	if gap := width - ansi.StringWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// Rule is a horizontal line width cells long.
func Rule(width int) string {
	return strings.Repeat("─", max(width, 0))
}
