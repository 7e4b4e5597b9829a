package ui

// Base holds the size a view was last laid out at. Views embed it.
type Base struct {
	width, height int
}

// SetSize records the view's dimensions.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// BodyHeight returns the rows left for scrolling content once overhead rows
// of headers are taken.
func (b Base) BodyHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
