package waterfall

import (
	"context"
	"fmt"
	"sync"
)

// fakeHost is an in-memory Host. Items are committed as soon as Mount returns.
type fakeHost struct {
	mu sync.Mutex

	offsetTop    int
	offsetLeft   int
	clientHeight int

	heights       map[string]int
	defaultHeight int
	unavailable   map[string]int // id -> remaining failed measurements

	committed map[string]bool
	mounts    [][]Brick
	measured  []string
	onMount   func(bricks []Brick)
	mountErr  error
}

func newFakeHost(clientHeight int) *fakeHost {
	return &fakeHost{
		clientHeight:  clientHeight,
		heights:       make(map[string]int),
		defaultHeight: 100,
		unavailable:   make(map[string]int),
		committed:     make(map[string]bool),
	}
}

func (h *fakeHost) OffsetTop() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offsetTop
}

func (h *fakeHost) OffsetLeft() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.offsetLeft
}

func (h *fakeHost) ClientHeight() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clientHeight
}

func (h *fakeHost) setClientHeight(v int) {
	h.mu.Lock()
	h.clientHeight = v
	h.mu.Unlock()
}

func (h *fakeHost) Mount(_ context.Context, bricks []Brick) error {
	h.mu.Lock()
	if h.mountErr != nil {
		err := h.mountErr
		h.mu.Unlock()
		return err
	}
	h.committed = make(map[string]bool, len(bricks))
	for _, b := range bricks {
		h.committed[b.ID] = true
	}
	cp := make([]Brick, len(bricks))
	copy(cp, bricks)
	h.mounts = append(h.mounts, cp)
	hook := h.onMount
	h.mu.Unlock()

	if hook != nil {
		hook(bricks)
	}
	return nil
}

func (h *fakeHost) MeasureHeight(item Item) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.measured = append(h.measured, item.ID)
	if !h.committed[item.ID] {
		return 0, fmt.Errorf("%s: %w", item.ID, ErrMeasurementUnavailable)
	}
	if n := h.unavailable[item.ID]; n > 0 {
		h.unavailable[item.ID] = n - 1
		return 0, fmt.Errorf("%s: %w", item.ID, ErrMeasurementUnavailable)
	}
	if v, ok := h.heights[item.ID]; ok {
		return v, nil
	}
	return h.defaultHeight, nil
}

func (h *fakeHost) mountCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.mounts)
}

func (h *fakeHost) measureCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.measured)
}

// fakeSource implements both ScrollSource and ResizeSource.
type fakeSource struct {
	mu        sync.Mutex
	pos       int
	listeners map[int]func()
	next      int
}

func newFakeSource() *fakeSource {
	return &fakeSource{listeners: make(map[int]func())}
}

func (s *fakeSource) ScrollPosition() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *fakeSource) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// scrollTo moves the position and notifies every listener.
func (s *fakeSource) scrollTo(pos int) {
	s.mu.Lock()
	s.pos = pos
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *fakeSource) listenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

type testBrick struct {
	Key    string
	Height int
}

func letters(ids ...string) Catalog {
	data := make([]testBrick, len(ids))
	for i, id := range ids {
		data[i] = testBrick{Key: id}
	}
	return BuildCatalog(nil, data, func(b testBrick) string { return b.Key })
}

func numbered(n int) Catalog {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%03d", i)
	}
	return letters(ids...)
}
