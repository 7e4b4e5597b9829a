// Package cursor tracks the selected row and scroll offset of a list whose
// length and viewport height are owned by the caller.
package cursor

import "github.com/llehouerou/tilawa/internal/keymap"

// Cursor is a selected row plus the first visible row. margin rows are kept
// visible above and below the selection when the list scrolls.
type Cursor struct {
	pos    int
	offset int
	margin int
}

// New creates a cursor on the first row.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected row.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the first visible row.
func (c Cursor) Offset() int { return c.offset }

// Move selects the row delta rows away, clamped to the list.
func (c *Cursor) Move(delta, n, height int) {
	c.Jump(c.pos+delta, n, height)
}

// Jump selects row pos, clamped to the list, and scrolls it into view.
func (c *Cursor) Jump(pos, n, height int) {
	if n == 0 {
		return
	}
	c.pos = clampRow(pos, n)
	c.EnsureVisible(n, height)
}

// JumpStart selects the first row.
func (c *Cursor) JumpStart() {
	c.pos, c.offset = 0, 0
}

// JumpEnd selects the last row.
func (c *Cursor) JumpEnd(n, height int) {
	c.Jump(n-1, n, height)
}

// Focus selects row pos and centers it in the viewport.
func (c *Cursor) Focus(pos, n, height int) {
	c.Jump(pos, n, height)
	c.Center(n, height)
}

// EnsureVisible scrolls so the selection sits at least margin rows inside
// the viewport.
func (c *Cursor) EnsureVisible(n, height int) {
	if height <= 0 || n == 0 {
		return
	}
	if top := c.pos - c.margin; top < c.offset {
		c.offset = max(top, 0)
	}
	if bottom := c.pos + c.margin + 1; bottom > c.offset+height {
		c.offset = bottom - height
	}
	c.offset = min(max(c.offset, 0), lastOffset(n, height))
}

// Center scrolls so the selection is in the middle of the viewport.
func (c *Cursor) Center(n, height int) {
	if height <= 0 || n == 0 {
		return
	}
	c.offset = min(max(c.pos-height/2, 0), lastOffset(n, height))
}

// ClampToBounds keeps the selection inside a list that may have shrunk and
// reports whether it moved.
func (c *Cursor) ClampToBounds(n int) bool {
	if n == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.JumpStart()
		return moved
	}
	old := c.pos
	c.pos = clampRow(c.pos, n)
	return c.pos != old
}

// VisibleRange returns the visible rows as the half-open range [start, end).
func (c Cursor) VisibleRange(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

// HandleAction applies a navigation action and reports whether it was one.
// Paging keeps one row of overlap.
func (c *Cursor) HandleAction(a keymap.Action, n, height int) bool {
	page := max(height-1, 1)
	switch a { //nolint:exhaustive // only navigation actions move the cursor
	case keymap.ActionMoveDown:
		c.Move(1, n, height)
	case keymap.ActionMoveUp:
		c.Move(-1, n, height)
	case keymap.ActionJumpStart:
		c.JumpStart()
	case keymap.ActionJumpEnd:
		c.JumpEnd(n, height)
	case keymap.ActionPageDown:
		c.Move(page, n, height)
	case keymap.ActionPageUp:
		c.Move(-page, n, height)
	default:
		return false
	}
	return true
}

func clampRow(pos, n int) int {
	return min(max(pos, 0), n-1)
}

func lastOffset(n, height int) int {
	return max(n-height, 0)
}
