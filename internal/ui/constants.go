// Package ui holds what the trainer's components share.
package ui

const (
	// ScrollMargin is how many verses stay visible above and below the cursor.
	ScrollMargin = 2

	// BorderHeight is the top and bottom border of a panel.
	BorderHeight = 2

	// HeaderHeight is a panel title plus its separator.
	HeaderHeight = 2

	// PanelOverhead is the rows of a panel that never hold list content.
	PanelOverhead = BorderHeight + HeaderHeight
)
