// Package cursor tracks a selection and its scroll window over a list whose
// length and visible height can change between calls.
package cursor

// Cursor is a selected index plus the first visible index. The list length
// and window height are arguments because a page reload or a resize changes
// them.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible around pos
}

func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int { return c.pos }

func (c Cursor) Offset() int { return c.offset }

// Move shifts the selection by delta, staying inside the list.
func (c *Cursor) Move(delta, n, height int) {
	c.Jump(c.pos+delta, n, height)
}

// Jump selects index i, clamped to the list. Empty lists are ignored.
func (c *Cursor) Jump(i, n, height int) {
	if n == 0 {
		return
	}
	c.pos = min(max(i, 0), n-1)
	c.EnsureVisible(n, height)
}

// EnsureVisible scrolls so that pos sits inside the window with its margin.
func (c *Cursor) EnsureVisible(n, height int) {
	if n == 0 || height <= 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)
	if lo := c.pos - margin; lo < c.offset {
		c.offset = lo
	}
	if hi := c.pos + margin + 1; hi > c.offset+height {
		c.offset = hi - height
	}
	c.offset = min(max(c.offset, 0), max(n-height, 0))
}

// VisibleRange returns the half-open range of indices in the window.
func (c Cursor) VisibleRange(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// HandleKey applies j/k, the arrows and ctrl+d/ctrl+u (half a window). It
// reports whether key was one of them.
func (c *Cursor) HandleKey(key string, n, height int) bool {
	half := max(height/2, 1)
	switch key {
	case "j", "down":
		c.Move(1, n, height)
	case "k", "up":
		c.Move(-1, n, height)
	case "ctrl+d":
		c.Move(half, n, height)
	case "ctrl+u":
		c.Move(-half, n, height)
	default:
		return false
	}
	return true
}
