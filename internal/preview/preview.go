// Package preview shows a bar in the terminal. It polls an in-memory display
// for its window contents, draws them with half-block cells and forwards
// terminal mouse input back to the display as pointer events.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/strut/internal/component"
	"github.com/five82/strut/internal/display"
)

const defaultRefresh = 100 * time.Millisecond

// Source is the display being previewed. *memdisplay.Display implements it.
type Source interface {
	Snapshot() *image.RGBA
	Inject(display.Event) bool
}

// Options configures the preview.
type Options struct {
	Title   string
	Refresh time.Duration
}

// Model is the Bubble Tea model for the preview.
type Model struct {
	src     Source
	title   string
	refresh time.Duration
	keys    keyMap
	help    help.Model

	width    int
	ready    bool
	showHelp bool

	bar    *image.RGBA // last snapshot at native size
	frame  *image.RGBA // bar scaled to the terminal width
	status string
}

// New creates a preview model for src.
func New(src Source, opts Options) Model {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	title := opts.Title
	if title == "" {
		title = "strut"
	}
	return Model{
		src:     src,
		title:   title,
		refresh: refresh,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.refresh)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.ready = true
		m.rescale()
		return m, nil

	case tickMsg:
		m.bar = m.src.Snapshot()
		m.rescale()
		return m, tickCmd(m.refresh)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Expose):
		m.src.Inject(display.Event{Kind: display.EventExpose})
		return m, nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.bar == nil || m.frame == nil {
		return m
	}
	rows := m.frame.Bounds().Dy() / 2
	if msg.Y < 0 || msg.Y >= rows || msg.X < 0 || msg.X >= m.frame.Bounds().Dx() {
		return m
	}

	ev := display.Event{
		X: m.barX(msg.X),
		Y: m.barY(msg.Y),
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		ev.Kind = display.EventMotion
	case tea.MouseActionPress:
		ev.Kind = display.EventButtonPress
	case tea.MouseActionRelease:
		ev.Kind = display.EventButtonRelease
	default:
		return m
	}
	if ev.Kind != display.EventMotion {
		ev.Button = buttonDetail(msg.Button)
		if ev.Button == 0 {
			return m
		}
	}

	if m.src.Inject(ev) && ev.Kind == display.EventButtonPress {
		m.status = fmt.Sprintf("%s click at x=%d", component.ButtonFromDetail(ev.Button), ev.X)
	}
	return m
}

// barX maps a terminal column to the bar pixel under the centre of the cell.
func (m Model) barX(col int) int16 {
	bw, cols := m.bar.Bounds().Dx(), m.frame.Bounds().Dx()
	return int16((2*col + 1) * bw / (2 * cols))
}

func (m Model) barY(row int) int16 {
	bh, px := m.bar.Bounds().Dy(), m.frame.Bounds().Dy()
	return int16((2*row + 1) * bh / px)
}

func buttonDetail(b tea.MouseButton) uint8 {
	switch b {
	case tea.MouseButtonLeft:
		return 1
	case tea.MouseButtonMiddle:
		return 2
	case tea.MouseButtonRight:
		return 3
	case tea.MouseButtonWheelUp:
		return 4
	case tea.MouseButtonWheelDown:
		return 5
	default:
		return 0
	}
}

func (m *Model) rescale() {
	if m.bar == nil || m.width <= 0 {
		return
	}
	m.frame = fit(m.bar, m.width)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready || m.frame == nil {
		return "Loading..."
	}

	title := lipgloss.NewStyle().Bold(true).Render(m.title)
	info := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("%dx%d", m.bar.Bounds().Dx(), m.bar.Bounds().Dy()))
	header := title + " " + info
	if m.status != "" {
		header += "  " + m.status
	}

	helpView := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		helpView = m.help.FullHelpView(m.keys.FullHelp())
	}
	return lipgloss.JoinVertical(lipgloss.Left, halfBlocks(m.frame), "", header, helpView)
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the preview and blocks until the user quits or ctx is done.
func Run(ctx context.Context, src Source, opts Options) error {
	p := tea.NewProgram(New(src, opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
