package waterfall

import (
	"fmt"
	"time"

	"github.com/grindlemire/go-waterfall/internal/layout"
)

// Config holds the engine's layout settings.
type Config struct {
	// Gutter is the spacing between columns and between stacked items.
	Gutter int
	// ColumnSize is the width of every column.
	ColumnSize int
	// ColumnNum is the number of columns.
	ColumnNum int
	// Threshold pads the viewport. Values up to 10 multiply the container
	// height; larger values are an absolute distance.
	Threshold float64
	// MaxUnpositioned caps how many unmeasured items are mounted per pass.
	MaxUnpositioned int
	// MaxIterations bounds the passes a single Layout call may run.
	MaxIterations int
	// ScrollDebounce is the trailing-edge debounce applied to scroll events.
	ScrollDebounce time.Duration
	// ScrollMaxWait forces a scroll update during a continuous burst.
	ScrollMaxWait time.Duration
}

// DefaultConfig returns the default layout settings.
func DefaultConfig() Config {
	return Config{
		Gutter:          24,
		ColumnSize:      240,
		ColumnNum:       4,
		Threshold:       1,
		MaxUnpositioned: layout.DefaultMaxUnpositioned,
		MaxIterations:   1000,
		ScrollDebounce:  100 * time.Millisecond,
		ScrollMaxWait:   200 * time.Millisecond,
	}
}

// Validate checks the settings. It returns a *ConfigurationError describing
// the first problem found.
func (c Config) Validate() error {
	switch {
	case c.ColumnNum <= 0:
		return &ConfigurationError{Field: "columnNum", Value: c.ColumnNum, Reason: "must be positive"}
	case c.ColumnSize <= 0:
		return &ConfigurationError{Field: "columnSize", Value: c.ColumnSize, Reason: "must be positive"}
	case c.Gutter < 0:
		return &ConfigurationError{Field: "gutter", Value: c.Gutter, Reason: "must not be negative"}
	case c.Threshold < 0:
		return &ConfigurationError{Field: "threshold", Value: c.Threshold, Reason: "must not be negative"}
	case c.MaxUnpositioned < 1:
		return &ConfigurationError{Field: "maxUnpositioned", Value: c.MaxUnpositioned, Reason: "must be at least 1"}
	case c.MaxIterations < 1:
		return &ConfigurationError{Field: "maxIterations", Value: c.MaxIterations, Reason: "must be at least 1"}
	case c.ScrollDebounce < 0 || c.ScrollMaxWait < 0:
		return &ConfigurationError{Field: "scrollDebounce", Value: c.ScrollDebounce, Reason: "durations must not be negative"}
	}
	return nil
}

// Option is a functional option for configuring an Engine.
type Option func(*Engine) error

// WithConfig replaces every layout setting at once.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		e.cfg = cfg
		return nil
	}
}

// WithGutter sets the spacing between columns and items. Default is 24.
func WithGutter(gutter int) Option {
	return func(e *Engine) error {
		e.cfg.Gutter = gutter
		return nil
	}
}

// WithColumnSize sets the column width. Default is 240.
func WithColumnSize(size int) Option {
	return func(e *Engine) error {
		e.cfg.ColumnSize = size
		return nil
	}
}

// WithColumnNum sets the number of columns. Default is 4.
func WithColumnNum(n int) Option {
	return func(e *Engine) error {
		e.cfg.ColumnNum = n
		return nil
	}
}

// WithThreshold sets the viewport padding. Default is 1 (one container height
// above and below).
func WithThreshold(threshold float64) Option {
	return func(e *Engine) error {
		e.cfg.Threshold = threshold
		return nil
	}
}

// WithMaxUnpositioned sets how many unmeasured items are mounted per pass.
// Default is 20.
func WithMaxUnpositioned(n int) Option {
	return func(e *Engine) error {
		e.cfg.MaxUnpositioned = n
		return nil
	}
}

// WithMaxIterations bounds the passes of a single Layout call. Default is 1000.
func WithMaxIterations(n int) Option {
	return func(e *Engine) error {
		e.cfg.MaxIterations = n
		return nil
	}
}

// WithScrollDebounce sets the trailing debounce and the maximum wait for scroll
// events. Defaults are 100ms and 200ms. A maxWait of 0 disables the cap.
func WithScrollDebounce(wait, maxWait time.Duration) Option {
	return func(e *Engine) error {
		if maxWait > 0 && maxWait < wait {
			return fmt.Errorf("scroll max wait %s is shorter than the debounce %s", maxWait, wait)
		}
		e.cfg.ScrollDebounce = wait
		e.cfg.ScrollMaxWait = maxWait
		return nil
	}
}

// WithScrollSource attaches a scroll source. Its position is read immediately
// and again after every debounced burst of scroll events.
func WithScrollSource(src ScrollSource) Option {
	return func(e *Engine) error {
		e.scrollSource = src
		return nil
	}
}

// WithResizeSource attaches a resize source. Resizes are applied without debouncing.
func WithResizeSource(src ResizeSource) Option {
	return func(e *Engine) error {
		e.resizeSource = src
		return nil
	}
}

// WithDispatcher routes event handlers through fn instead of the engine's own
// queue. Use it to run the engine inside another event loop; fn must arrange
// for the handler to run on the goroutine that owns the engine.
func WithDispatcher(fn func(func())) Option {
	return func(e *Engine) error {
		e.dispatch = fn
		return nil
	}
}

// WithOnRendered sets a callback invoked after every completed Layout.
func WithOnRendered(fn func(Result)) Option {
	return func(e *Engine) error {
		e.onRendered = fn
		return nil
	}
}

// WithEventQueueSize sets the capacity of the event queue buffer.
// Default is 64. Must be at least 1.
func WithEventQueueSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("event queue size must be at least 1")
		}
		e.queueSize = size
		return nil
	}
}
