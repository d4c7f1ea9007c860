package viewer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	waterfall "github.com/grindlemire/go-waterfall"
)

// termHost renders cards to strings. Mounting a brick renders its card;
// measuring reads the rendered line count. The terminal scroll area is the
// container, so both offsets are zero.
type termHost struct {
	styles       Styles
	columnSize   int
	clientHeight int

	cards map[string][]string
}

func newTermHost(styles Styles, columnSize int) *termHost {
	return &termHost{
		styles:     styles,
		columnSize: columnSize,
		cards:      make(map[string][]string),
	}
}

func (h *termHost) OffsetTop() int    { return 0 }
func (h *termHost) OffsetLeft() int   { return 0 }
func (h *termHost) ClientHeight() int { return h.clientHeight }

// Mount replaces the committed set with bricks. Cards for bricks that are
// still mounted are kept.
func (h *termHost) Mount(ctx context.Context, bricks []waterfall.Brick) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	next := make(map[string][]string, len(bricks))
	for _, b := range bricks {
		if lines, ok := h.cards[b.ID]; ok {
			next[b.ID] = lines
			continue
		}
		card := h.styles.RenderCard(b.Item, h.columnSize)
		next[b.ID] = strings.Split(card, "\n")
	}
	h.cards = next
	return nil
}

func (h *termHost) MeasureHeight(item waterfall.Item) (int, error) {
	lines, ok := h.cards[item.ID]
	if !ok {
		return 0, fmt.Errorf("%q not mounted: %w", item.ID, waterfall.ErrMeasurementUnavailable)
	}
	return lipgloss.Height(strings.Join(lines, "\n")), nil
}

// lines returns the committed card for id.
func (h *termHost) lines(id string) []string {
	return h.cards[id]
}

// forget drops every rendered card, forcing the next mount to render again.
func (h *termHost) forget() {
	h.cards = make(map[string][]string)
}

// listeners is a set of change callbacks shared by the scroll and resize sources.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func (l *listeners) Subscribe(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func())
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// scrollSource holds the viewer's scroll offset in rows. The debounce timer
// reads it from its own goroutine.
type scrollSource struct {
	listeners
	pos int
}

func (s *scrollSource) ScrollPosition() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *scrollSource) set(pos int) bool {
	s.mu.Lock()
	changed := s.pos != pos
	s.pos = pos
	s.mu.Unlock()
	if changed {
		s.notify()
	}
	return changed
}

type resizeSource struct {
	listeners
}
