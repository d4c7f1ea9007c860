package waterfall

import "github.com/grindlemire/go-waterfall/internal/debug"

// controller is an event source attached to an engine.
// Controllers never touch engine state directly: they post handlers that run
// on the engine's goroutine.
type controller interface {
	stop()
}

// scrollController debounces scroll notifications and feeds the final
// position to the engine.
type scrollController struct {
	debounce    *debouncer
	unsubscribe func()
}

func newScrollController(e *Engine, src ScrollSource) *scrollController {
	apply := func() {
		e.SetScrollPosition(src.ScrollPosition())
	}
	c := &scrollController{
		debounce: newDebouncer(e.cfg.ScrollDebounce, e.cfg.ScrollMaxWait, func() {
			e.Post(apply)
		}),
	}

	// Read the starting position right away rather than waiting for the first scroll.
	apply()

	c.unsubscribe = src.Subscribe(func() {
		if !e.alive.Load() {
			return
		}
		c.debounce.Trigger()
	})
	return c
}

func (c *scrollController) stop() {
	c.debounce.Stop()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// resizeController forwards resize notifications immediately.
type resizeController struct {
	unsubscribe func()
}

func newResizeController(e *Engine, src ResizeSource) *resizeController {
	c := &resizeController{}
	c.unsubscribe = src.Subscribe(func() {
		if !e.alive.Load() {
			return
		}
		debug.Log("resize received")
		e.Post(e.handleResize)
	})
	return c
}

func (c *resizeController) stop() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}
