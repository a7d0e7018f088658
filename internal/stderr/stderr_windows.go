//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to stderr.
package stderr

import "github.com/charmbracelet/log"

type Capture struct{}

func Start() (*Capture, error) { return &Capture{}, nil }

func (*Capture) Forward(*log.Logger) {}

func (*Capture) Stop() {}
