package errmsg

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		err  error
		want string
	}{
		{"nil", OpPageLoad, nil, ""},
		{"plain", OpPageLoad, errors.New("status 503"), "Could not load page: status 503"},
		{
			"joined errors keep every line",
			OpPlaybackJump,
			errors.Join(errors.New("index out of range"), errors.New("verse 20")),
			"Could not jump to verse: index out of range\nverse 20",
		},
		{
			"repeated op prefix is dropped",
			OpRecitersGet,
			fmt.Errorf("list reciters: %w", errors.New("status 429")),
			"Could not list reciters: status 429",
		},
		{
			"deadline",
			OpPageLoad,
			fmt.Errorf("fetch verses: %w", context.DeadlineExceeded),
			"Could not load page: timed out",
		},
		{"cancelled", OpSetReciter, context.Canceled, "Could not change reciter: cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		subject string
		err     error
		want    string
	}{
		{"nil", OpPageGoto, "605", nil, ""},
		{"subject", OpPageGoto, "605", errors.New("page out of range"), "Could not go to page 605: page out of range"},
		{"no subject", OpSurahGoto, "", errors.New("unknown surah"), "Could not go to surah: unknown surah"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.subject, tt.err); got != tt.want {
				t.Errorf("FormatWith() = %q, want %q", got, tt.want)
			}
		})
	}
}
