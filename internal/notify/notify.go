// Package notify shows page completions as desktop notifications.
package notify

import "time"

// Urgency follows the freedesktop notification levels.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

type Notification struct {
	Title   string
	Body    string
	Icon    string        // icon name or image path
	Timeout time.Duration // 0 lets the server decide
	Urgency Urgency
}

// Notifier displays notifications.
type Notifier interface {
	Notify(n Notification) error
}
