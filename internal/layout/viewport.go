package layout

import "math"

// absoluteThreshold is the boundary between the two threshold modes. Values up
// to and including it multiply the container height; larger values are an
// absolute buffer in container units.
const absoluteThreshold = 10

// ExpandSize returns the buffer added above and below the visible area.
func ExpandSize(containerHeight int, threshold float64) int {
	if threshold > absoluteThreshold {
		return int(math.Round(threshold))
	}
	return int(math.Round(float64(containerHeight) * threshold))
}

// ComputeViewport derives the padded visible range from the scroll position
// and the container geometry.
//
// The scroll position is measured in the scroll source's coordinates, while the
// result is relative to the top of the masonry container, hence the subtraction
// of containerOffsetTop.
func ComputeViewport(scrollPosition, containerOffsetTop, containerHeight int, threshold float64) Viewport {
	expand := ExpandSize(containerHeight, threshold)
	return Viewport{
		Top:    scrollPosition - containerOffsetTop - expand,
		Bottom: scrollPosition + containerHeight - containerOffsetTop + expand,
	}
}
