// Package layout provides pure functions for UI dimension calculations.
package layout

// ShortThreshold is the terminal height below which the player bar is
// always drawn compact.
const ShortThreshold = 20

// notificationBorder is the top and bottom border of the notification box.
const notificationBorder = 2

// ContentOpts describes the rows taken by the fixed bars.
type ContentOpts struct {
	HeaderHeight      int
	PlayerBarHeight   int // 0 while no page is loaded
	NotificationCount int // notifications plus the loading line
}

// ContentHeight returns the rows left for the verse panel, never below
// minHeight.
func ContentHeight(windowHeight, minHeight int, opts ContentOpts) int {
	h := windowHeight - opts.HeaderHeight - opts.PlayerBarHeight - NotificationHeight(opts.NotificationCount)
	return max(h, minHeight)
}

// NotificationHeight returns the height of the notification box.
func NotificationHeight(count int) int {
	if count <= 0 {
		return 0
	}
	return count + notificationBorder
}

// IsShort reports whether the terminal is too short for the expanded player
// bar.
func IsShort(height int) bool {
	return height < ShortThreshold
}
