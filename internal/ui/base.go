package ui

// Base holds the size and focus shared by the panels and popups. Embed it to
// get SetSize for popup.Popup.
type Base struct {
	width, height int
	focused       bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int { return b.width }

func (b Base) Height() int { return b.height }

// ListHeight is the number of rows left for list content once overhead rows
// are taken.
func (b Base) ListHeight(overhead int) int {
	return b.height - overhead
}
