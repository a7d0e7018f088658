//go:build linux

package notify

import (
	"os"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
)

func TestHints(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical})
	if got := h["urgency"].Value(); got != byte(2) {
		t.Errorf("urgency hint = %v, want 2", got)
	}
	if got := h["desktop-entry"]; got != dbus.MakeVariant("hifdh") {
		t.Errorf("desktop-entry hint = %v", got)
	}
}

func TestExpiry(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    int32
	}{
		{0, -1},
		{-time.Second, -1},
		{5 * time.Second, 5000},
		{1500 * time.Millisecond, 1500},
	}
	for _, tt := range tests {
		if got := expiry(Notification{Timeout: tt.timeout}); got != tt.want {
			t.Errorf("expiry(%v) = %d, want %d", tt.timeout, got, tt.want)
		}
	}
}

func TestDesktop_ReplacesPrevious(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	d, err := New()
	if err != nil {
		t.Skipf("session bus: %v", err)
	}

	if err := d.Notify(Notification{Title: "Hifdh test", Timeout: time.Second, Urgency: UrgencyLow}); err != nil {
		t.Skipf("no notification server: %v", err)
	}
	first := d.last
	if first == 0 {
		t.Fatal("server returned id 0")
	}
	if err := d.Notify(Notification{Title: "Hifdh test 2", Timeout: time.Second, Urgency: UrgencyLow}); err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if d.last != first {
		t.Errorf("second notification id = %d, want it to replace %d", d.last, first)
	}
}
