// Package errmsg turns errors into the one-line messages shown in the
// notification area and on the command line.
package errmsg

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Op names the user action that failed, phrased to follow "Could not".
type Op string

const (
	OpPageLoad    Op = "load page"
	OpPageGoto    Op = "go to page"
	OpJuzGoto     Op = "go to juz"
	OpSurahGoto   Op = "go to surah"
	OpRecitersGet Op = "list reciters"

	OpPlaybackStart Op = "start playback"
	OpPlaybackJump  Op = "jump to verse"
	OpSetMode       Op = "change mode"
	OpSetTarget     Op = "change repetition target"
	OpSetReciter    Op = "change reciter"

	OpSessionRestore    Op = "restore session"
	OpCompletionRecord  Op = "record completion"
	OpCompletionHistory Op = "load completion history"
	OpMarkMemorized     Op = "mark memorized page"

	OpInitialize Op = "initialize application"
)

// Format returns "" for a nil error.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith names the subject of op, such as a page number, when subject
// is not empty.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	action := string(op)
	if subject != "" {
		action += " " + subject
	}
	return fmt.Sprintf("Could not %s: %s", action, reason(op, err))
}

// reason drops a leading "<op>: " already added by the caller's wrapping and
// replaces context errors with plain words.
func reason(op Op, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, string(op)+": "); ok && rest != "" {
		return rest
	}
	return msg
}
