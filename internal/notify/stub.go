//go:build !linux

package notify

import "errors"

// Desktop is unavailable outside Linux.
type Desktop struct{}

func New() (*Desktop, error) {
	return nil, errors.New("desktop notifications need D-Bus")
}

func (*Desktop) Notify(Notification) error { return nil }
