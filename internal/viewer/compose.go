package viewer

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	waterfall "github.com/grindlemire/go-waterfall"
)

// tile is a rendered card at its masonry position.
type tile struct {
	rect  waterfall.Rect
	lines []string
}

// grid describes the visible window of the masonry in terminal cells.
type grid struct {
	top        int
	rows       int
	columns    int
	columnSize int
	gutter     int
	width      int
}

// compose paints the tiles that cross rows [top, top+rows) into lines. Every
// line is padded to the column layout and cut to the terminal width.
func compose(tiles []tile, g grid) []string {
	window := waterfall.Viewport{Top: g.top, Bottom: g.top + g.rows}

	byColumn := make([][]tile, g.columns)
	for _, t := range tiles {
		if t.rect.Column < 0 || t.rect.Column >= g.columns {
			continue
		}
		if t.rect.IsEmpty() || !window.Intersects(t.rect) {
			continue
		}
		byColumn[t.rect.Column] = append(byColumn[t.rect.Column], t)
	}

	blank := strings.Repeat(" ", g.columnSize)
	sep := strings.Repeat(" ", g.gutter)
	out := make([]string, 0, window.Height())
	var b strings.Builder
	for y := window.Top; y < window.Bottom; y++ {
		b.Reset()
		for c := 0; c < g.columns; c++ {
			if c > 0 {
				b.WriteString(sep)
			}
			x := c * (g.columnSize + g.gutter)
			b.WriteString(cell(byColumn[c], x, y, blank))
		}
		out = append(out, ansi.Truncate(strings.TrimRight(b.String(), " "), g.width, ""))
	}
	return out
}

// cell returns the slice of whichever tile covers the cell at (x, y).
func cell(tiles []tile, x, y int, blank string) string {
	for _, t := range tiles {
		if !t.rect.Contains(x, y) {
			continue
		}
		i := y - t.rect.Top
		if i >= len(t.lines) {
			return blank
		}
		return fit(t.lines[i], t.rect.Width())
	}
	return blank
}

// fit pads or cuts s to exactly size cells.
func fit(s string, size int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > size:
		return ansi.Truncate(s, size, "")
	case w < size:
		return s + strings.Repeat(" ", size-w)
	default:
		return s
	}
}

// fitColumns returns how many columns of size cells fit in width.
func fitColumns(width, size, gutter int) int {
	if size <= 0 {
		return 1
	}
	return max(1, (width+gutter)/(size+gutter))
}
