// Package icons provides the status glyphs shown by the player bar and
// verse panel in nerd-font, unicode or plain ASCII style.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Idle       string
	Completed  string
	Repeat     string
	Page       string
	Missing    string
	Memorized  string
	Volume     string
	VolumeMute string
}

var (
	nerdIcons = Icons{
		Play:       "",   // nf-fa-play
		Pause:      "",   // nf-fa-pause
		Idle:       "",   // nf-fa-stop
		Completed:  "",   // nf-fa-check
		Repeat:     "󰑖",        // nf-md-repeat
		Page:       " ",  // nf-fa-book
		Missing:    "",   // nf-fa-warning
		Memorized:  "\uf004",     // nf-fa-heart
		Volume:     "",   // nf-fa-volume_up
		VolumeMute: "\U000f075f", // nf-md-volume_off
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Idle:       "■",
		Completed:  "✓",
		Repeat:     "🔁",
		Page:       "📖 ",
		Missing:    "⚠",
		Memorized:  "♥",
		Volume:     "🔊",
		VolumeMute: "🔇",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Idle:       "[]",
		Completed:  "ok",
		Repeat:     "x",
		Page:       "",
		Missing:    "!",
		Memorized:  "*",
		Volume:     "vol",
		VolumeMute: "mute",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Unknown styles fall back to unicode.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Play returns the playing indicator.
func Play() string { return current.Play }

// Pause returns the paused indicator.
func Pause() string { return current.Pause }

// Idle returns the stopped indicator.
func Idle() string { return current.Idle }

// Completed returns the finished-sequence indicator.
func Completed() string { return current.Completed }

// Repeat returns the repetition counter icon.
func Repeat() string { return current.Repeat }

// Missing marks a verse without audio.
func Missing() string { return current.Missing }

// Memorized marks a page the user knows by heart.
func Memorized() string { return current.Memorized }

// Volume returns the volume icon.
func Volume() string { return current.Volume }

// VolumeMute returns the muted volume icon.
func VolumeMute() string { return current.VolumeMute }

// FormatPage prefixes a page title with the page icon.
func FormatPage(title string) string {
	return current.Page + title
}
