package layout

import "testing"

func TestContentHeight(t *testing.T) {
	const minHeight = 3
	tests := []struct {
		window int
		opts   ContentOpts
		want   int
	}{
		{40, ContentOpts{HeaderHeight: 1}, 39},
		{40, ContentOpts{HeaderHeight: 1, PlayerBarHeight: 5}, 34},
		{40, ContentOpts{HeaderHeight: 1, NotificationCount: 2}, 35},
		{40, ContentOpts{HeaderHeight: 1, PlayerBarHeight: 3, NotificationCount: 1}, 33},
		{8, ContentOpts{HeaderHeight: 1, PlayerBarHeight: 5, NotificationCount: 3}, minHeight},
		{0, ContentOpts{}, minHeight},
	}
	for _, tt := range tests {
		if got := ContentHeight(tt.window, minHeight, tt.opts); got != tt.want {
			t.Errorf("ContentHeight(%d, %+v) = %d, want %d", tt.window, tt.opts, got, tt.want)
		}
	}
}

func TestNotificationHeight(t *testing.T) {
	for count, want := range map[int]int{-1: 0, 0: 0, 1: 3, 3: 5} {
		if got := NotificationHeight(count); got != want {
			t.Errorf("NotificationHeight(%d) = %d, want %d", count, got, want)
		}
	}
}

func TestIsShort(t *testing.T) {
	for height, want := range map[int]bool{12: true, ShortThreshold - 1: true, ShortThreshold: false, 40: false} {
		if got := IsShort(height); got != want {
			t.Errorf("IsShort(%d) = %v, want %v", height, got, want)
		}
	}
}
