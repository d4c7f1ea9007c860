// layout.go re-exports layout types from internal/layout.
// Any changes to internal/layout types must be mirrored here.
package waterfall

import "github.com/grindlemire/go-waterfall/internal/layout"

// Rect is the computed placement of an item: its column and its box in
// container coordinates.
type Rect = layout.Rect

// Viewport is the padded vertical window used to decide what is rendered.
type Viewport = layout.Viewport

// Decision is the outcome of comparing the cached key order to a new catalog.
type Decision = layout.Decision

// DecisionKind says how much of the cache survives a catalog change.
type DecisionKind = layout.DecisionKind

const (
	PartialInvalidate = layout.PartialInvalidate
	FullReset         = layout.FullReset
)

// ComputeViewport derives the padded visible range from the scroll position and
// container geometry. Thresholds up to 10 multiply the container height; larger
// values are an absolute buffer.
func ComputeViewport(scrollPosition, containerOffsetTop, containerHeight int, threshold float64) Viewport {
	return layout.ComputeViewport(scrollPosition, containerOffsetTop, containerHeight, threshold)
}

// Reconcile compares previously cached keys against the ids of a new catalog.
func Reconcile(previousKeys, catalog []string) Decision {
	return layout.Reconcile(previousKeys, catalog)
}
