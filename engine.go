package waterfall

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/grindlemire/go-waterfall/internal/debug"
	"github.com/grindlemire/go-waterfall/internal/layout"
)

// State is the phase of the layout loop.
type State int

const (
	Idle State = iota
	Selecting
	Mounting
	Measuring
)

// String returns a readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	case Mounting:
		return "mounting"
	case Measuring:
		return "measuring"
	default:
		return "unknown"
	}
}

// Engine is a masonry layout engine bound to one host.
//
// An Engine is not safe for concurrent use. Every method except Post and
// Dispose must be called from the goroutine that owns it, normally the one
// running Run. Scroll and resize sources reach the engine through Post.
type Engine struct {
	cfg  Config
	host Host

	catalog Catalog
	ids     []string
	cache   *layout.Cache
	columns *layout.Columns

	scrollPosition      int
	containerOffsetTop  int
	containerOffsetLeft int
	containerHeight     int

	state    State
	rendered []Brick

	scrollSource ScrollSource
	resizeSource ResizeSource
	controllers  []controller

	dispatch   func(func())
	onRendered func(Result)
	queueSize  int
	queue      chan func()
	done       chan struct{}
	closeOnce  sync.Once

	dirty atomic.Bool
	alive atomic.Bool
}

// New creates an engine for host. The configuration is validated before the
// engine is returned; invalid settings produce a *ConfigurationError.
func New(host Host, opts ...Option) (*Engine, error) {
	if host == nil {
		return nil, &ConfigurationError{Field: "host", Value: nil, Reason: "must not be nil"}
	}

	e := &Engine{
		cfg:       DefaultConfig(),
		host:      host,
		queueSize: 64,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	e.cache = layout.NewCache()
	e.columns = layout.NewColumns(e.cfg.ColumnNum)
	e.queue = make(chan func(), e.queueSize)
	e.alive.Store(true)
	e.refreshContainer()

	if e.scrollSource != nil {
		e.controllers = append(e.controllers, newScrollController(e, e.scrollSource))
	}
	if e.resizeSource != nil {
		e.controllers = append(e.controllers, newResizeController(e, e.resizeSource))
	}

	e.dirty.Store(true)
	return e, nil
}

// Config returns the current layout settings.
func (e *Engine) Config() Config {
	return e.cfg
}

// Catalog returns the current catalog.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// SetCatalog replaces the catalog and invalidates as much of the cached layout
// as the change requires. The catalog is deduplicated, first occurrence wins.
func (e *Engine) SetCatalog(c Catalog) Decision {
	if !e.alive.Load() {
		return Decision{Kind: PartialInvalidate, Index: -1}
	}

	e.catalog = c.Dedupe()
	e.ids = e.catalog.IDs()

	d := layout.Reconcile(e.cache.Keys(), e.ids)
	removed := layout.Apply(d, e.cache, e.columns)
	switch {
	case d.Kind == FullReset:
		debug.Log("catalog: full reset at index %d (%d items), generation %d", d.Index, len(e.ids), e.cache.Generation())
	case d.FromID != "":
		debug.Log("catalog: invalidated %d rects from %q", len(removed), d.FromID)
	}

	e.MarkDirty()
	return d
}

// SetColumnNum changes the number of columns. Rects are not valid across
// column counts, so any change resets the whole layout.
func (e *Engine) SetColumnNum(n int) error {
	if n <= 0 {
		return &ConfigurationError{Field: "columnNum", Value: n, Reason: "must be positive"}
	}
	if n == e.cfg.ColumnNum {
		return nil
	}
	e.cfg.ColumnNum = n
	e.Relayout()
	return nil
}

// Relayout discards every rect and column height and schedules a new layout.
// Container geometry is read again from the host.
func (e *Engine) Relayout() {
	if !e.alive.Load() {
		return
	}
	e.cache.Reset()
	e.columns.Reset(e.cfg.ColumnNum)
	e.refreshContainer()
	debug.Log("relayout: %d columns, generation %d", e.cfg.ColumnNum, e.cache.Generation())
	e.MarkDirty()
}

// SetScrollPosition records a new scroll position and schedules a layout.
func (e *Engine) SetScrollPosition(pos int) {
	if !e.alive.Load() || pos == e.scrollPosition {
		return
	}
	e.scrollPosition = pos
	e.MarkDirty()
}

// ScrollPosition returns the last scroll position the engine saw.
func (e *Engine) ScrollPosition() int {
	return e.scrollPosition
}

// handleResize reads the container geometry again.
func (e *Engine) handleResize() {
	if !e.alive.Load() {
		return
	}
	e.refreshContainer()
	e.MarkDirty()
}

func (e *Engine) refreshContainer() {
	e.containerOffsetTop = e.host.OffsetTop()
	e.containerOffsetLeft = e.host.OffsetLeft()
	e.containerHeight = e.host.ClientHeight()
}

// Viewport returns the padded window used for the next selection.
func (e *Engine) Viewport() Viewport {
	return layout.ComputeViewport(e.scrollPosition, e.containerOffsetTop, e.containerHeight, e.cfg.Threshold)
}

// ContainerHeight returns the height the container needs: the tallest column.
func (e *Engine) ContainerHeight() int {
	return e.columns.Max()
}

// ColumnHeights returns a copy of the running column heights.
func (e *Engine) ColumnHeights() []int {
	return e.columns.Heights()
}

// Generation returns the layout generation, bumped on every full reset.
func (e *Engine) Generation() uint64 {
	return e.cache.Generation()
}

// State returns the current phase of the layout loop.
func (e *Engine) State() State {
	return e.state
}

// Rect returns the cached rect for id.
func (e *Engine) Rect(id string) (Rect, bool) {
	return e.cache.Get(id)
}

// Rendered returns the bricks selected by the last pass with their current
// rects. Hosts paint from this after Layout returns.
func (e *Engine) Rendered() []Brick {
	out := make([]Brick, len(e.rendered))
	copy(out, e.rendered)
	return out
}

// BricksPosition returns the container offsets and a copy of every cached rect.
func (e *Engine) BricksPosition() Positions {
	return Positions{
		ContainerOffsetTop:  e.host.OffsetTop(),
		ContainerOffsetLeft: e.host.OffsetLeft(),
		Cache:               e.cache.Snapshot(),
	}
}

// MarkDirty schedules a layout on the next iteration of Run.
func (e *Engine) MarkDirty() {
	e.dirty.Store(true)
}

// IsDirty reports whether a layout is pending.
func (e *Engine) IsDirty() bool {
	return e.dirty.Load()
}

// Alive reports whether the engine has not been disposed.
func (e *Engine) Alive() bool {
	return e.alive.Load()
}

// Post schedules fn to run on the engine's goroutine. Safe to call from any
// goroutine. Handlers posted or still queued after Dispose never run.
func (e *Engine) Post(fn func()) {
	if !e.alive.Load() {
		return
	}
	guarded := func() {
		if e.alive.Load() {
			fn()
		}
	}

	if e.dispatch != nil {
		e.dispatch(guarded)
		return
	}

	// Block rather than drop: the last event of a burst carries the final state.
	select {
	case e.queue <- guarded:
	case <-e.done:
	}
}

// Run processes posted events and runs a layout whenever one is pending.
// Blocks until ctx is done or the engine is disposed.
func (e *Engine) Run(ctx context.Context) error {
	if e.dispatch != nil {
		return ErrCustomDispatcher
	}

	for {
		if e.dirty.Load() {
			if _, err := e.Layout(ctx); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return nil
		case fn := <-e.queue:
			fn()
		drain:
			for {
				select {
				case fn := <-e.queue:
					fn()
				default:
					break drain
				}
			}
		}
	}
}

// Dispose stops the engine. Scroll and resize subscriptions are removed,
// pending timers are stopped and any handler or pass that fires afterwards
// is ignored. Dispose is idempotent.
func (e *Engine) Dispose() {
	e.closeOnce.Do(func() {
		e.alive.Store(false)
		for _, c := range e.controllers {
			c.stop()
		}
		close(e.done)
		debug.Log("engine disposed")
	})
}
