// Package headless provides a waterfall host with no renderer. Heights come
// from a function instead of measurement, which makes it suitable for
// simulations, benchmarks and tests.
package headless

import (
	"context"
	"fmt"
	"sync"

	waterfall "github.com/grindlemire/go-waterfall"
)

// HeightFunc returns the height of item.
type HeightFunc func(item waterfall.Item) int

// Host is a waterfall.Host backed by a HeightFunc. Items can be measured once
// they have been mounted.
type Host struct {
	mu           sync.Mutex
	height       HeightFunc
	offsetTop    int
	offsetLeft   int
	clientHeight int

	committed map[string]bool
	mounts    int
	mounted   int
}

// New returns a host with the given viewport height.
func New(clientHeight int, height HeightFunc) *Host {
	return &Host{
		height:       height,
		clientHeight: clientHeight,
		committed:    make(map[string]bool),
	}
}

// SetClientHeight changes the viewport height. The engine only sees it after a
// resize notification or a relayout.
func (h *Host) SetClientHeight(height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clientHeight = height
}

// SetOffset moves the container within the scroll area.
func (h *Host) SetOffset(top, left int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.offsetTop, h.offsetLeft = top, left
}

func (h *Host) OffsetTop() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offsetTop
}

func (h *Host) OffsetLeft() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offsetLeft
}

func (h *Host) ClientHeight() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clientHeight
}

// Mount commits every brick immediately.
func (h *Host) Mount(ctx context.Context, bricks []waterfall.Brick) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, b := range bricks {
		h.committed[b.ID] = true
	}
	h.mounts++
	h.mounted += len(bricks)
	return nil
}

// MeasureHeight returns the configured height of a mounted item.
func (h *Host) MeasureHeight(item waterfall.Item) (int, error) {
	h.mu.Lock()
	committed := h.committed[item.ID]
	h.mu.Unlock()
	if !committed {
		return 0, fmt.Errorf("%q not mounted: %w", item.ID, waterfall.ErrMeasurementUnavailable)
	}
	return h.height(item), nil
}

// Stats reports how many Mount calls were made and how many bricks they carried.
func (h *Host) Stats() (mounts, bricks int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounts, h.mounted
}

// Fixed returns a HeightFunc that uses lookup and falls back to def.
func Fixed(lookup func(waterfall.Item) (int, bool), def int) HeightFunc {
	return func(item waterfall.Item) int {
		if lookup != nil {
			if h, ok := lookup(item); ok {
				return h
			}
		}
		return def
	}
}
