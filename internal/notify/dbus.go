//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = "/org/freedesktop/Notifications"
	appName = "Hifdh"
)

// Desktop sends notifications over the session bus. Each notification
// replaces the previous one so that completions do not pile up.
type Desktop struct {
	obj  dbus.BusObject
	mu   sync.Mutex
	last uint32
}

// New connects to the session bus.
func New() (*Desktop, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &Desktop{obj: conn.Object(busName, busPath)}, nil
}

func (d *Desktop) Notify(n Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	call := d.obj.Call(busName+".Notify", 0,
		appName, d.last, n.Icon, n.Title, n.Body,
		[]string{}, hints(n), expiry(n))
	if call.Err != nil {
		return call.Err
	}
	return call.Store(&d.last)
}

func hints(n Notification) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant("hifdh"),
	}
}

// expiry converts the timeout to milliseconds, -1 being the server default.
func expiry(n Notification) int32 {
	if n.Timeout <= 0 {
		return -1
	}
	return int32(n.Timeout.Milliseconds()) //nolint:gosec // notification timeouts are seconds long
}
