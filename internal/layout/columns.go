package layout

// Columns tracks the running height of every masonry column.
// Heights only grow through Assign; Rollback and Reset are the only way down.
type Columns struct {
	heights []int
}

// NewColumns creates a tracker with n zero-height columns.
func NewColumns(n int) *Columns {
	c := &Columns{}
	c.Reset(n)
	return c
}

// Reset drops all heights and resizes the tracker to n columns.
func (c *Columns) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.heights = make([]int, n)
}

// Len returns the number of columns.
func (c *Columns) Len() int {
	return len(c.heights)
}

// Pick returns the index of the shortest column. Ties go to the lowest index.
// Returns -1 when there are no columns.
func (c *Columns) Pick() int {
	best := -1
	for i, h := range c.heights {
		if best < 0 || h < c.heights[best] {
			best = i
		}
	}
	return best
}

// Height returns the current height of column i.
func (c *Columns) Height(i int) int {
	if i < 0 || i >= len(c.heights) {
		return 0
	}
	return c.heights[i]
}

// Assign places an item of the given height at the bottom of column i and
// advances the column by height plus gutter. It returns the item's top.
func (c *Columns) Assign(i, height, gutter int) int {
	top := c.heights[i]
	c.heights[i] = top + height + gutter
	return top
}

// Rollback lowers column i to top if it is currently taller.
// It never raises a column, so stale overestimates cannot survive an invalidation.
func (c *Columns) Rollback(i, top int) {
	if i < 0 || i >= len(c.heights) {
		return
	}
	c.heights[i] = min(top, c.heights[i])
}

// Max returns the height of the tallest column, or 0 with no columns.
func (c *Columns) Max() int {
	m := 0
	for _, h := range c.heights {
		m = max(m, h)
	}
	return m
}

// Min returns the height of the shortest column, or 0 with no columns.
func (c *Columns) Min() int {
	if i := c.Pick(); i >= 0 {
		return c.heights[i]
	}
	return 0
}

// Heights returns a copy of the column heights.
func (c *Columns) Heights() []int {
	out := make([]int, len(c.heights))
	copy(out, c.heights)
	return out
}
