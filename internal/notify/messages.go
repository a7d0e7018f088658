package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const completionTimeout = 5 * time.Second

// Completion describes a finished page for PageCompleted.
type Completion struct {
	Page        int
	Mode        string
	Repetitions int
	Times       int // how often the page has now been completed
	Missing     int // verses skipped for lack of audio
	Failures    int // clips that failed to play
}

// PageCompleted builds the notification shown when a page sequence ends.
func PageCompleted(c Completion) Notification {
	var body strings.Builder
	fmt.Fprintf(&body, "%s mode, %d %s", titleCase(c.Mode), c.Repetitions, plural(c.Repetitions, "repetition"))
	if c.Times > 0 {
		fmt.Fprintf(&body, "\nCompleted for the %s time", humanize.Ordinal(c.Times))
	}

	urgency := UrgencyNormal
	if c.Missing > 0 || c.Failures > 0 {
		fmt.Fprintf(&body, "\n%d %s skipped", c.Missing+c.Failures, plural(c.Missing+c.Failures, "verse"))
		urgency = UrgencyLow
	}

	return Notification{
		Title:   fmt.Sprintf("Page %d completed", c.Page),
		Body:    body.String(),
		Icon:    "media-playlist-repeat",
		Timeout: completionTimeout,
		Urgency: urgency,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
