package layout

// Rect is the computed placement of one item in the masonry grid.
// Top and Bottom are measured from the top of the container; Bottom is exclusive.
type Rect struct {
	Column int
	Left   int
	Top    int
	Height int
	Bottom int
	Right  int
}

// NewRect builds the rect for an item of the given height placed at top in column.
// Left and Right follow from the column index, column width and gutter.
func NewRect(column, top, height, columnSize, gutter int) Rect {
	left := column * (columnSize + gutter)
	return Rect{
		Column: column,
		Left:   left,
		Top:    top,
		Height: height,
		Bottom: top + height,
		Right:  left + columnSize,
	}
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// IsEmpty returns true if the rect has zero or negative height.
func (r Rect) IsEmpty() bool {
	return r.Height <= 0 || r.Width() <= 0
}

// Contains returns true if the point (x, y) is inside the rect.
// Points on the left and top edges are inside; points on the right and bottom edges are outside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Translate returns a new Rect moved by (dx, dy). The column is unchanged.
func (r Rect) Translate(dx, dy int) Rect {
	r.Left += dx
	r.Right += dx
	r.Top += dy
	r.Bottom += dy
	return r
}
