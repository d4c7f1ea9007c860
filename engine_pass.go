package waterfall

import (
	"context"
	"errors"

	"github.com/grindlemire/go-waterfall/internal/debug"
	"github.com/grindlemire/go-waterfall/internal/layout"
)

// Result summarises one Layout call.
type Result struct {
	// Passes is the number of select, mount and measure iterations run.
	Passes int
	// Mounted counts bricks handed to the host across all passes.
	Mounted int
	// Placed counts items that received a rect.
	Placed int
	// Deferred counts items left unplaced because an earlier item in the same
	// pass could not be measured yet. They are retried in a later pass.
	Deferred int
	// Discarded counts passes whose measurements were dropped because the
	// layout generation changed while mounting.
	Discarded int
	// ContainerHeight is the tallest column after the last pass.
	ContainerHeight int
	Generation      uint64
	// Exhausted is set when the iteration guard stopped the loop.
	Exhausted bool
}

// Layout runs passes until no unpositioned item remains inside the padded
// viewport.
//
// Each pass selects the positioned items in view plus a bounded batch of
// unpositioned ones, asks the host to mount them, measures the new ones and
// drops each into the shortest column. Rects are assigned in catalog order.
// Layout returns an error only when ctx is cancelled; host failures leave the
// affected items unpositioned until a later call.
func (e *Engine) Layout(ctx context.Context) (Result, error) {
	var res Result
	if !e.alive.Load() {
		return res, nil
	}
	e.dirty.Store(false)
	defer func() { e.state = Idle }()

	for {
		if res.Passes >= e.cfg.MaxIterations {
			res.Exhausted = true
			debug.Log("layout: stopped after %d passes", res.Passes)
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Passes++

		e.state = Selecting
		vp := e.Viewport()
		sel := layout.Select(e.ids, e.cache, vp, e.cfg.MaxUnpositioned)
		bricks := e.bricks(sel, vp)
		e.rendered = bricks

		e.state = Mounting
		gen := e.cache.Generation()
		if err := e.host.Mount(ctx, bricks); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			debug.Log("layout: mount failed: %v", err)
			break
		}
		res.Mounted += len(bricks)

		if !e.alive.Load() {
			return res, nil
		}
		if e.cache.Generation() != gen {
			res.Discarded++
			debug.Log("layout: generation moved from %d to %d while mounting, reselecting", gen, e.cache.Generation())
			continue
		}
		if layout.CountUnpositioned(sel) == 0 {
			break
		}

		e.state = Measuring
		placed, deferred := e.measure(bricks)
		res.Placed += placed
		res.Deferred += deferred
		e.refreshRendered()

		if !e.needsAnotherPass(placed) {
			break
		}
	}

	res.ContainerHeight = e.columns.Max()
	res.Generation = e.cache.Generation()
	if e.onRendered != nil && e.alive.Load() {
		e.onRendered(res)
	}
	return res, nil
}

// measure assigns rects to the unpositioned bricks in catalog order. The
// first item whose height cannot be read yet stops placement for the pass;
// it and every item after it are left for a later pass, so the cache keeps
// catalog order and a later append can reuse every rect.
func (e *Engine) measure(bricks []Brick) (placed, deferred int) {
	for i, b := range bricks {
		if b.Positioned {
			continue
		}

		h, err := e.host.MeasureHeight(b.Item)
		if err != nil {
			if !errors.Is(err, ErrMeasurementUnavailable) {
				debug.Log("layout: measuring %q: %v", b.ID, err)
			}
			return placed, countUnpositioned(bricks[i:])
		}

		if _, ok := layout.Place(e.cache, e.columns, b.ID, h, e.cfg.ColumnSize, e.cfg.Gutter); ok {
			placed++
		}
	}
	return placed, 0
}

func countUnpositioned(bricks []Brick) int {
	n := 0
	for _, b := range bricks {
		if !b.Positioned {
			n++
		}
	}
	return n
}

// needsAnotherPass reports whether the next unpositioned item would still land
// inside the padded viewport. The next item goes to the shortest column, so
// once that column reaches past the bottom nothing new can become visible.
func (e *Engine) needsAnotherPass(placed int) bool {
	if placed == 0 {
		return false
	}
	if layout.Unpositioned(e.ids, e.cache) == 0 {
		return false
	}
	return e.columns.Min() < e.Viewport().Bottom
}

// bricks pairs each selection with its catalog item.
func (e *Engine) bricks(sel []layout.Selection, vp Viewport) []Brick {
	out := make([]Brick, len(sel))
	for i, s := range sel {
		out[i] = Brick{
			Item:       e.catalog[s.Index],
			Rect:       s.Rect,
			Positioned: s.Positioned,
			Visible:    s.Positioned && vp.Intersects(s.Rect),
		}
	}
	return out
}

// refreshRendered copies rects assigned during measurement into the rendered set.
func (e *Engine) refreshRendered() {
	vp := e.Viewport()
	for i := range e.rendered {
		b := &e.rendered[i]
		if b.Positioned {
			continue
		}
		if r, ok := e.cache.Get(b.ID); ok {
			b.Rect = r
			b.Positioned = true
			b.Visible = vp.Intersects(r)
		}
	}
}
