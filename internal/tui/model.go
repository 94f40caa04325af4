// Package tui provides a BubbleTea playground for exercising placement
// interactively, with terminal cells standing in for pixels.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/popkit/internal/core"
	"github.com/jmylchreest/popkit/internal/engine"
	"github.com/jmylchreest/popkit/internal/geometry"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// directionCycle is the order Tab steps through requested directions.
var directionCycle = []core.Direction{
	core.DirectionNone,
	core.DirectionDown,
	core.DirectionUp,
	core.DirectionRight,
	core.DirectionLeft,
}

// Model is the playground TUI model.
type Model struct {
	eng     *engine.Engine
	content *engine.StaticContent

	km   KeyMap
	help help.Model

	width  int
	height int
	ready  bool

	anchor      geometry.Rect
	dirIndex    int
	modal       bool
	passthrough bool
	contentSize geometry.Size

	presentedAt time.Time
	statusMsg   string
	statusErr   bool
}

// NewModel creates a playground model with a synchronous engine.
func NewModel() Model {
	m := Model{
		km:          DefaultKeyMap(),
		help:        help.New(),
		anchor:      geometry.NewRect(10, 5, 4, 2),
		contentSize: geometry.Size{Width: 24, Height: 8},
	}
	m.eng = engine.New(nil)
	m.content = engine.NewStaticContent(engine.StaticRegion(geometry.Rect{}), m.contentSize)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// passthroughRect is the demo passthrough region, tucked into the
// bottom-left of the available area.
func (m Model) passthroughRect() geometry.Rect {
	avail := m.container().Available()
	return geometry.NewRect(avail.X, avail.Bottom()-4, 12, 4)
}

// container maps the terminal to a placement container, reserving two
// rows for the status area.
func (m Model) container() core.Container {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return core.Container{
		Bounds: geometry.NewRect(0, 0, m.width, h),
		Margin: geometry.EdgeAll(1),
		Gap:    1,
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.passthrough {
			m.eng.SetPassthroughViews([]engine.Region{engine.StaticRegion(m.passthroughRect())})
		}
		m.eng.Reflow(m.container())
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleClick(geometry.Point{X: msg.X, Y: msg.Y}), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleClick presents at the click point, or routes the tap when a
// popover is already visible.
func (m Model) handleClick(p geometry.Point) Model {
	if m.eng.State() == engine.StateVisible {
		route := m.eng.Classify(p)
		m.eng.HandleTap(p)
		m.setStatus(fmt.Sprintf("tap at (%d,%d) routed %s", p.X, p.Y, route), false)
		return m
	}

	m.anchor = geometry.RectAt(p, geometry.Size{Width: 4, Height: 2})
	return m.present()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := 1

	switch {
	case key.Matches(msg, m.km.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.km.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.km.Up):
		m.anchor = m.anchor.Translate(0, -step)
		m = m.represent()
	case key.Matches(msg, m.km.Down):
		m.anchor = m.anchor.Translate(0, step)
		m = m.represent()
	case key.Matches(msg, m.km.Left):
		m.anchor = m.anchor.Translate(-step, 0)
		m = m.represent()
	case key.Matches(msg, m.km.Right):
		m.anchor = m.anchor.Translate(step, 0)
		m = m.represent()
	case key.Matches(msg, m.km.Present):
		m = m.present()
	case key.Matches(msg, m.km.Dismiss):
		m.eng.Dismiss(false)
		m.setStatus("dismissed", false)
	case key.Matches(msg, m.km.Direction):
		m.dirIndex = (m.dirIndex + 1) % len(directionCycle)
		m = m.represent()
	case key.Matches(msg, m.km.Modal):
		m.modal = !m.modal
		m.eng.SetModal(m.modal)
		m.setStatus(fmt.Sprintf("modal %v", m.modal), false)
	case key.Matches(msg, m.km.Passthrough):
		m.passthrough = !m.passthrough
		if m.passthrough {
			m.eng.SetPassthroughViews([]engine.Region{engine.StaticRegion(m.passthroughRect())})
		} else {
			m.eng.SetPassthroughViews(nil)
		}
		m.setStatus(fmt.Sprintf("passthrough %v", m.passthrough), false)
	case key.Matches(msg, m.km.Grow):
		m.contentSize = geometry.Size{Width: m.contentSize.Width + 4, Height: m.contentSize.Height + 2}
		m = m.resize()
	case key.Matches(msg, m.km.Shrink):
		m.contentSize = geometry.Size{
			Width:  max(m.contentSize.Width-4, 4),
			Height: max(m.contentSize.Height-2, 2),
		}
		m = m.resize()
	case key.Matches(msg, m.km.Reflow):
		m.eng.Reflow(m.container())
		m.setStatus("reflowed", false)
	}

	return m, nil
}

// present shows the popover at the current anchor.
func (m Model) present() Model {
	c := m.container()
	err := m.eng.Present(engine.PresentRequest{
		Content:   m.content,
		Anchor:    core.Anchor{Rect: m.anchor},
		Container: c,
		Class:     core.DeviceCompact,
		Sizes:     core.SizePreference{Override: &m.contentSize},
		Direction: directionCycle[m.dirIndex],
		Animated:  false,
	})
	if err != nil {
		m.setStatus(err.Error(), true)
		return m
	}

	m.presentedAt = time.Now()
	p := m.eng.Placement()
	m.setStatus(fmt.Sprintf("placed %s at %v shrunk=%v", p.Direction, p.Frame, p.Shrunk), false)
	return m
}

// represent re-presents after an anchor or direction change.
func (m Model) represent() Model {
	if m.eng.State() != engine.StateVisible {
		return m
	}
	m.eng.Dismiss(false)
	return m.present()
}

// resize pushes the new content size through the live engine.
func (m Model) resize() Model {
	if m.eng.State() == engine.StateVisible {
		m.content.SetIntrinsic(m.contentSize)
		m.eng.SetPreferredContentSize(m.contentSize, false)
		p := m.eng.Placement()
		m.setStatus(fmt.Sprintf("resized, frame %v shrunk=%v", p.Frame, p.Shrunk), false)
	}
	return m
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	c := m.container()
	grid := make([][]rune, c.Bounds.Height)
	for y := range grid {
		grid[y] = make([]rune, c.Bounds.Width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	drawBorder(grid, c.Available(), '·')
	if m.passthrough {
		drawFill(grid, m.passthroughRect(), '#')
	}
	drawFill(grid, m.anchor, '▒')

	if m.eng.State() == engine.StateVisible {
		p := m.eng.Placement()
		drawBorder(grid, p.Frame, '█')
		drawFill(grid, p.Frame.Inset(geometry.EdgeAll(1)), '░')
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}

	return b.String() + "\n" + m.statusLine() + "\n" + m.help.View(m.km)
}

// statusLine summarizes the current engine state.
func (m Model) statusLine() string {
	state := m.eng.State().String()
	if m.eng.State() == engine.StateVisible && !m.presentedAt.IsZero() {
		state += " since " + humanize.Time(m.presentedAt)
	}

	parts := []string{
		"state: " + state,
		"want: " + directionCycle[m.dirIndex].String(),
		fmt.Sprintf("content: %dx%d", m.contentSize.Width, m.contentSize.Height),
	}
	if m.modal {
		parts = append(parts, "modal")
	}
	if m.passthrough {
		parts = append(parts, "passthrough")
	}

	line := statusStyle.Render(strings.Join(parts, " | "))
	if m.statusMsg != "" {
		msg := m.statusMsg
		if m.statusErr {
			msg = errorStyle.Render(msg)
		}
		line += " " + msg
	}
	return line
}

// drawBorder traces the rect outline into the grid, clipped to bounds.
func drawBorder(grid [][]rune, r geometry.Rect, ch rune) {
	if r.IsEmpty() {
		return
	}
	for x := r.X; x < r.Right(); x++ {
		set(grid, x, r.Y, ch)
		set(grid, x, r.Bottom()-1, ch)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		set(grid, r.X, y, ch)
		set(grid, r.Right()-1, y, ch)
	}
}

// drawFill fills the rect interior, clipped to bounds.
func drawFill(grid [][]rune, r geometry.Rect, ch rune) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			set(grid, x, y, ch)
		}
	}
}

func set(grid [][]rune, x, y int, ch rune) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = ch
}
