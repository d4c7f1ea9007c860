// Package viewer is an interactive terminal host for the waterfall engine.
//
// Cards are rendered with lipgloss, measured by their line count and
// composited into columns. The engine's scroll and resize controllers post
// their work back into the Bubble Tea update loop, so the engine is only ever
// touched from one goroutine.
package viewer

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	waterfall "github.com/grindlemire/go-waterfall"
	"github.com/grindlemire/go-waterfall/internal/config"
	"github.com/grindlemire/go-waterfall/internal/debug"
	"github.com/grindlemire/go-waterfall/internal/fixture"
)

// headerRows sits above the masonry; chromeRows adds the footer.
const (
	headerRows = 1
	chromeRows = headerRows + 1
)

// wheelStep is the number of rows one mouse wheel notch scrolls.
const wheelStep = 3

// Options configures a Model.
type Options struct {
	Config  config.Config
	Fixture fixture.File
	// Path is the fixture's location, used for live reload when Config.Viewer.Watch is set.
	Path   string
	Styles *Styles
}

// Model is the Bubble Tea model hosting the engine.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg         config.Config
	styles      Styles
	autoColumns bool

	engine *waterfall.Engine
	host   *termHost
	scroll *scrollSource
	resize *resizeSource
	events chan func()

	path   string
	reload <-chan fixture.Event
	file   fixture.File

	width  int
	height int
	status string
	last   waterfall.Result
}

type dispatchMsg func()

type reloadMsg fixture.Event

// New builds the model and its engine. The engine is disposed when the
// program quits or Close is called.
func New(ctx context.Context, opts Options) (*Model, error) {
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		ctx:         ctx,
		cancel:      cancel,
		cfg:         opts.Config,
		styles:      styles,
		autoColumns: opts.Config.Viewer.AutoColumns,
		host:        newTermHost(styles, opts.Config.Layout.ColumnSize),
		scroll:      &scrollSource{},
		resize:      &resizeSource{},
		events:      make(chan func(), 64),
		path:        opts.Path,
		file:        opts.Fixture,
	}

	engine, err := waterfall.New(m.host,
		waterfall.WithConfig(opts.Config.Engine()),
		waterfall.WithScrollSource(m.scroll),
		waterfall.WithResizeSource(m.resize),
		waterfall.WithDispatcher(m.dispatch),
	)
	if err != nil {
		cancel()
		return nil, err
	}
	m.engine = engine
	opts.Fixture.Apply(m.engine)
	return m, nil
}

// dispatch hands fn to the update loop. It may be called from any goroutine,
// including the update loop itself, which is the only reader of events; when
// the buffer is full the send moves to its own goroutine instead of blocking.
func (m *Model) dispatch(fn func()) {
	select {
	case m.events <- fn:
		return
	case <-m.ctx.Done():
		return
	default:
	}
	go func() {
		select {
		case m.events <- fn:
		case <-m.ctx.Done():
		}
	}()
}

// Close disposes the engine and stops the fixture watcher.
func (m *Model) Close() {
	m.engine.Dispose()
	m.cancel()
}

// Engine exposes the underlying engine.
func (m *Model) Engine() *waterfall.Engine {
	return m.engine
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForEvent()}
	if m.path != "" && m.cfg.Viewer.Watch {
		reload, err := fixture.Watch(m.ctx, m.path)
		if err != nil {
			m.status = "watch disabled: " + err.Error()
		} else {
			m.reload = reload
			cmds = append(cmds, m.waitForReload())
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-m.events:
			return dispatchMsg(fn)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) waitForReload() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev, ok := <-m.reload:
			if !ok {
				return nil
			}
			return reloadMsg(ev)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.handleKey(msg) {
			m.Close()
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollBy(-wheelStep)
			case tea.MouseButtonWheelDown:
				m.scrollBy(wheelStep)
			case tea.MouseButtonLeft:
				m.selectAt(msg.X, msg.Y)
			}
		}
	case dispatchMsg:
		msg()
		cmd = m.waitForEvent()
	case reloadMsg:
		m.applyReload(fixture.Event(msg))
		cmd = m.waitForReload()
	}

	m.settle()
	return m, cmd
}

// handleKey applies a key binding. It reports whether the viewer should quit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	page := max(1, m.host.clientHeight-1)
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return true
	case "down", "j":
		m.scrollBy(1)
	case "up", "k":
		m.scrollBy(-1)
	case "pgdown", " ", "f":
		m.scrollBy(page)
	case "pgup", "b":
		m.scrollBy(-page)
	case "home", "g":
		m.scrollTo(0)
	case "end", "G":
		m.scrollTo(m.maxScroll())
	case "r":
		m.host.forget()
		m.engine.Relayout()
		m.status = "relayout"
	case "+", "=":
		m.autoColumns = false
		m.setColumns(m.engine.Config().ColumnNum + 1)
	case "-", "_":
		m.autoColumns = false
		m.setColumns(m.engine.Config().ColumnNum - 1)
	case "a":
		m.autoColumns = true
		m.setColumns(fitColumns(m.width, m.cfg.Layout.ColumnSize, m.cfg.Layout.Gutter))
	}
	return false
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	m.host.clientHeight = max(1, height-chromeRows)
	if m.autoColumns {
		m.setColumns(fitColumns(width, m.cfg.Layout.ColumnSize, m.cfg.Layout.Gutter))
	}
	m.resize.notify()
	m.scrollTo(m.scroll.ScrollPosition())
}

func (m *Model) setColumns(n int) {
	if n < 1 {
		return
	}
	if err := m.engine.SetColumnNum(n); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%d columns", n)
}

func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.scroll.ScrollPosition() + delta)
}

func (m *Model) scrollTo(pos int) {
	pos = min(max(0, pos), m.maxScroll())
	m.scroll.set(pos)
}

// maxScroll lets the last placed row reach the bottom of the screen.
func (m *Model) maxScroll() int {
	return max(0, m.engine.ContainerHeight()-m.host.clientHeight)
}

// selectAt names the brick under screen cell (x, y) in the footer.
func (m *Model) selectAt(x, y int) {
	pos := m.engine.BricksPosition()
	dy := headerRows - m.scroll.ScrollPosition()
	for _, b := range m.engine.Rendered() {
		r, ok := pos.Absolute(b.ID)
		if !ok {
			continue
		}
		if r.Translate(0, dy).Contains(x, y) {
			m.status = "selected " + fixture.Title(b.Item)
			return
		}
	}
}

func (m *Model) applyReload(ev fixture.Event) {
	if ev.Err != nil {
		m.status = "reload failed: " + ev.Err.Error()
		return
	}
	m.file = ev.File
	d := ev.File.Apply(m.engine)
	m.status = fmt.Sprintf("reloaded %d items (%s)", len(m.engine.Catalog()), d.Kind)
}

// settle runs a layout if anything changed since the last one.
func (m *Model) settle() {
	if !m.engine.IsDirty() || m.host.clientHeight == 0 {
		return
	}
	res, err := m.engine.Layout(m.ctx)
	if err != nil {
		debug.Log("viewer: layout: %v", err)
		return
	}
	m.last = res
	if res.Exhausted {
		m.status = fmt.Sprintf("layout stopped after %d passes", res.Passes)
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	ec := m.engine.Config()
	rendered := m.engine.Rendered()
	tiles := make([]tile, 0, len(rendered))
	for _, b := range rendered {
		if !b.Positioned {
			continue
		}
		tiles = append(tiles, tile{rect: b.Rect, lines: m.host.lines(b.ID)})
	}

	body := compose(tiles, grid{
		top:        m.scroll.ScrollPosition(),
		rows:       m.host.clientHeight,
		columns:    ec.ColumnNum,
		columnSize: ec.ColumnSize,
		gutter:     ec.Gutter,
		width:      m.width,
	})

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) header() string {
	placed := 0
	for _, item := range m.engine.Catalog() {
		if _, ok := m.engine.Rect(item.ID); ok {
			placed++
		}
	}
	text := fmt.Sprintf("waterfall  %d/%d placed  %d mounted  %d cols  row %d/%d",
		placed, len(m.engine.Catalog()), len(m.engine.Rendered()),
		m.engine.Config().ColumnNum, m.scroll.ScrollPosition(), m.engine.ContainerHeight())
	return ansi.Truncate(m.styles.Header.Render(text), m.width, "…")
}

func (m *Model) footer() string {
	text := "j/k scroll  pgup/pgdn page  g/G ends  +/- columns  a auto  r relayout  click select  q quit"
	style := m.styles.Footer
	if m.status != "" {
		text = m.status
		if strings.HasPrefix(m.status, "reload failed") {
			style = m.styles.Error
		}
	}
	return ansi.Truncate(style.Render(text), m.width, "…")
}

// Run starts the viewer full-screen and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
