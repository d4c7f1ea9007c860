package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	waterfall "github.com/grindlemire/go-waterfall"
	"github.com/grindlemire/go-waterfall/internal/config"
	"github.com/grindlemire/go-waterfall/internal/fixture"
)

func testConfig() config.Config {
	return config.Config{
		Layout: config.LayoutConfig{
			Gutter:          1,
			ColumnSize:      20,
			ColumnNum:       2,
			Threshold:       1,
			MaxUnpositioned: 20,
			MaxIterations:   1000,
		},
		Scroll: config.ScrollConfig{Debounce: 5 * time.Millisecond, MaxWait: 10 * time.Millisecond},
		Viewer: config.ViewerConfig{AutoColumns: true},
	}
}

func testFixture(n int) fixture.File {
	f := fixture.File{}
	for i := 0; i < n; i++ {
		f.Bricks = append(f.Bricks, fixture.Brick{
			ID:    fmt.Sprintf("b%02d", i),
			Title: fmt.Sprintf("Brick %02d", i),
			Body:  "short body",
		})
	}
	return f
}

func newTestModel(t *testing.T, n int) *Model {
	t.Helper()
	m, err := New(context.Background(), Options{Config: testConfig(), Fixture: testFixture(n)})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 62, Height: 22})
	return m
}

// drain applies every engine callback queued so far.
func drain(m *Model) {
	for {
		select {
		case fn := <-m.events:
			m.Update(dispatchMsg(fn))
		default:
			return
		}
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRenderCard(t *testing.T) {
	s := DefaultStyles()
	item := waterfall.Item{ID: "a", Payload: fixture.Brick{ID: "a", Title: "Alpha", Body: "short body"}}

	card := s.RenderCard(item, 20)
	require.Equal(t, 20, lipgloss.Width(card))
	require.Equal(t, 4, lipgloss.Height(card))
	require.Contains(t, card, "Alpha")

	tagged := waterfall.Item{ID: "b", Payload: fixture.Brick{ID: "b", Title: "Beta", Tags: []string{"x", "y"}}}
	require.Contains(t, s.RenderCard(tagged, 20), "#x #y")

	long := waterfall.Item{ID: "c", Payload: fixture.Brick{ID: "c", Title: "C", Body: strings.Repeat("word ", 20)}}
	require.Greater(t, lipgloss.Height(s.RenderCard(long, 20)), 4, "long bodies wrap")
}

func TestTermHost_MeasureAfterMount(t *testing.T) {
	h := newTermHost(DefaultStyles(), 20)
	item := waterfall.Item{ID: "a", Payload: fixture.Brick{ID: "a", Title: "Alpha", Body: "short body"}}

	_, err := h.MeasureHeight(item)
	require.True(t, errors.Is(err, waterfall.ErrMeasurementUnavailable))

	require.NoError(t, h.Mount(context.Background(), []waterfall.Brick{{Item: item}}))
	got, err := h.MeasureHeight(item)
	require.NoError(t, err)
	require.Equal(t, 4, got)

	require.NoError(t, h.Mount(context.Background(), nil))
	_, err = h.MeasureHeight(item)
	require.Error(t, err, "unmounted cards cannot be measured")
}

func TestCompose(t *testing.T) {
	tiles := []tile{
		{rect: waterfall.Rect{Column: 0, Left: 0, Right: 4, Top: 0, Height: 2, Bottom: 2}, lines: []string{"aaa", "aaa"}},
		{rect: waterfall.Rect{Column: 1, Left: 5, Right: 9, Top: 1, Height: 3, Bottom: 4}, lines: []string{"bbbbbb", "bb", "b"}},
		{rect: waterfall.Rect{Column: 0, Left: 0, Right: 4, Top: 9, Height: 1, Bottom: 10}, lines: []string{"off screen"}},
		{rect: waterfall.Rect{Column: 1, Left: 5, Right: 9, Top: 0, Height: 0, Bottom: 0}, lines: []string{"empty"}},
	}

	got := compose(tiles, grid{top: 0, rows: 4, columns: 2, columnSize: 4, gutter: 1, width: 80})
	want := []string{
		"aaa",
		"aaa  bbbb",
		"     bb",
		"     b",
	}
	require.Equal(t, want, got)

	scrolled := compose(tiles, grid{top: 2, rows: 2, columns: 2, columnSize: 4, gutter: 1, width: 6})
	require.Equal(t, []string{"     b", "     b"}, scrolled)
}

func TestFitColumns(t *testing.T) {
	tests := map[string]struct {
		width, size, gutter int
		want                int
	}{
		"exact":      {width: 62, size: 20, gutter: 1, want: 3},
		"one short":  {width: 61, size: 20, gutter: 1, want: 2},
		"too narrow": {width: 5, size: 20, gutter: 1, want: 1},
		"zero size":  {width: 80, size: 0, gutter: 1, want: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := fitColumns(tt.width, tt.size, tt.gutter); got != tt.want {
				t.Errorf("fitColumns() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestModel_LaysOutOnResize(t *testing.T) {
	m := newTestModel(t, 40)

	require.Equal(t, 3, m.Engine().Config().ColumnNum)
	require.True(t, m.last.Passes > 0)

	r, ok := m.Engine().Rect("b00")
	require.True(t, ok)
	require.Equal(t, waterfall.Rect{Column: 0, Left: 0, Top: 0, Height: 4, Bottom: 4, Right: 20}, r)

	view := m.View()
	require.Len(t, strings.Split(view, "\n"), 22)
	require.Contains(t, view, "Brick 00")
	require.Contains(t, view, "Brick 02")
}

func TestModel_ClickSelectsBrick(t *testing.T) {
	m := newTestModel(t, 40)
	click := func(x, y int) {
		m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	}

	// Row 0 is the header, so screen row 2 is the second row of the first brick.
	click(1, 2)
	require.Equal(t, "selected Brick 00", m.status)

	click(22, 1)
	require.Equal(t, "selected Brick 01", m.status)

	// The gutter between the first two columns belongs to no brick.
	click(20, 2)
	require.Equal(t, "selected Brick 01", m.status)
}

func TestModel_ScrollReachesEngineThroughDebounce(t *testing.T) {
	m := newTestModel(t, 40)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	require.Equal(t, 19, m.scroll.ScrollPosition())

	require.Eventually(t, func() bool {
		drain(m)
		return m.Engine().ScrollPosition() == 19
	}, 2*time.Second, 5*time.Millisecond)

	m.Update(runes("g"))
	require.Equal(t, 0, m.scroll.ScrollPosition())

	m.Update(runes("k"))
	require.Equal(t, 0, m.scroll.ScrollPosition(), "scroll is clamped at the top")

	m.Update(runes("G"))
	require.Equal(t, m.maxScroll(), m.scroll.ScrollPosition())
}

func TestModel_ResizeWithFullEventBuffer(t *testing.T) {
	m := newTestModel(t, 40)
	drain(m)
	for len(m.events) < cap(m.events) {
		m.events <- func() {}
	}

	done := make(chan struct{})
	go func() {
		m.Update(tea.WindowSizeMsg{Width: 62, Height: 32})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Update blocked on a full event buffer")
	}

	// Same column count, so only the queued resize handler can move the
	// viewport: 30 visible rows padded by one viewport height.
	require.Eventually(t, func() bool {
		drain(m)
		return m.Engine().Viewport().Bottom == 60
	}, 2*time.Second, 5*time.Millisecond)
}

func TestModel_ColumnKeys(t *testing.T) {
	m := newTestModel(t, 10)

	m.Update(runes("+"))
	require.Equal(t, 4, m.Engine().Config().ColumnNum)
	require.False(t, m.autoColumns)

	m.Update(runes("-"))
	m.Update(runes("-"))
	require.Equal(t, 2, m.Engine().Config().ColumnNum)

	r, ok := m.Engine().Rect("b01")
	require.True(t, ok)
	require.Equal(t, 1, r.Column)

	m.Update(runes("a"))
	require.Equal(t, 3, m.Engine().Config().ColumnNum)
	require.True(t, m.autoColumns)
}

func TestModel_Reload(t *testing.T) {
	m := newTestModel(t, 10)

	m.Update(reloadMsg{File: testFixture(12)})
	require.Len(t, m.Engine().Catalog(), 12)
	require.Contains(t, m.status, "reloaded 12 items")

	m.Update(reloadMsg{Err: errors.New("boom")})
	require.Contains(t, m.status, "reload failed")
	require.Len(t, m.Engine().Catalog(), 12)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, 3)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.False(t, m.Engine().Alive())
}
