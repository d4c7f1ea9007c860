package layout

// Viewport is the padded vertical window, in container coordinates, that
// decides which positioned items are rendered.
type Viewport struct {
	Top    int
	Bottom int
}

// Intersects reports whether any part of r lies inside the viewport.
// Touching edges do not count.
func (v Viewport) Intersects(r Rect) bool {
	return r.Bottom > v.Top && r.Top < v.Bottom
}

// Height returns the vertical extent of the viewport.
func (v Viewport) Height() int {
	return v.Bottom - v.Top
}
