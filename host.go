package waterfall

import "context"

// Brick is an item selected for mounting, together with its placement.
type Brick struct {
	Item
	// Rect is only meaningful when Positioned is true.
	Rect Rect
	// Positioned is false for items mounted only so they can be measured.
	// Hosts should mount them hidden until they receive a rect.
	Positioned bool
	// Visible reports whether the rect intersects the current viewport.
	Visible bool
}

// Mounter renders the selected bricks and commits them to the host's visual
// tree. The host calls its own render function once per brick. Mount blocks
// until the bricks are committed and can be measured; it is the only point at
// which a layout pass waits.
type Mounter interface {
	Mount(ctx context.Context, bricks []Brick) error
}

// MeasurementProvider reports the height of a committed item.
// It returns an error wrapping ErrMeasurementUnavailable when the item is not
// committed yet.
type MeasurementProvider interface {
	MeasureHeight(item Item) (int, error)
}

// Container reports the geometry of the masonry container.
// OffsetTop is the container's top edge in the scroll source's coordinates;
// ClientHeight is the visible height of the scrolling area.
type Container interface {
	OffsetTop() int
	OffsetLeft() int
	ClientHeight() int
}

// Host bundles everything the engine needs from its renderer.
type Host interface {
	Container
	Mounter
	MeasurementProvider
}

// ScrollSource exposes a scroll position and change notifications.
type ScrollSource interface {
	ScrollPosition() int
	// Subscribe registers fn to be called on every scroll change and returns
	// a function that removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// ResizeSource notifies about changes to the viewport size.
type ResizeSource interface {
	Subscribe(fn func()) (unsubscribe func())
}

// Positions is the snapshot returned by BricksPosition, for features that need
// the absolute coordinates of every placed item.
type Positions struct {
	ContainerOffsetTop  int
	ContainerOffsetLeft int
	Cache               map[string]Rect
}

// Absolute returns the rect for id moved into the scroll source's coordinates.
func (p Positions) Absolute(id string) (Rect, bool) {
	r, ok := p.Cache[id]
	if !ok {
		return Rect{}, false
	}
	return r.Translate(p.ContainerOffsetLeft, p.ContainerOffsetTop), true
}
