// Package tui hosts a controller in a terminal: mouse drags are the touch
// stream, the wheel scrolls the content natively, and a bubbles spinner is the
// refresh indicator.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agiangrant/pullrefresh"
	"github.com/agiangrant/pullrefresh/retained"
)

const (
	// frameInterval paces registry ticks while a spring is running.
	frameInterval = 16 * time.Millisecond
	// defaultRefreshFor is how long a simulated fetch takes.
	defaultRefreshFor = 1500 * time.Millisecond
	// defaultLines is the initial number of content rows.
	defaultLines = 50
)

// Options configures a Model.
type Options struct {
	Config     pullrefresh.Config
	RefreshFor time.Duration
	Lines      int
	Logger     *slog.Logger
}

// frameMsg drives the animation registry.
type frameMsg time.Time

// refreshDoneMsg ends a simulated fetch.
type refreshDoneMsg struct{}

// Model is the bubbletea model of the demo screen. It plays the owning
// screen: it answers OnRefresh by raising IsRefreshing and clears it when the
// simulated fetch finishes.
type Model struct {
	ctrl      *pullrefresh.Controller
	registry  *retained.AnimationRegistry
	content   *contentView
	indicator *spinnerIndicator
	log       *slog.Logger

	background lipgloss.Color
	refreshFor time.Duration
	items      []string
	refreshes  int

	width, height int

	pressed          bool
	originX, originY int
	lastY            int
	framing          bool
	fetching         bool
	pendingCmds      []tea.Cmd
}

// New builds the demo model and mounts its controller.
func New(opts Options) (*Model, error) {
	if opts.RefreshFor <= 0 {
		opts.RefreshFor = defaultRefreshFor
	}
	if opts.Lines <= 0 {
		opts.Lines = defaultLines
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := opts.Config
	m := &Model{
		registry:   retained.NewAnimationRegistry(),
		content:    newContentView(),
		indicator:  newSpinnerIndicator(indicatorStyle(cfg.IndicatorStyle)),
		log:        logger.With("component", "tui"),
		background: colorFor(cfg.BackgroundColor),
		refreshFor: opts.RefreshFor,
	}
	for i := 1; i <= opts.Lines; i++ {
		m.items = append(m.items, itemStyle.Render(fmt.Sprintf("Item %d", i)))
	}
	m.syncContent()

	cfg.Indicator = m.indicator
	cfg.Logger = logger
	ctrl, err := pullrefresh.New(cfg, pullrefresh.Props{
		OnRefresh: m.onRefresh,
		Content:   m.content,
	}, m.registry)
	if err != nil {
		return nil, err
	}
	m.ctrl = ctrl
	return m, nil
}

// Controller exposes the mounted controller.
func (m *Model) Controller() *pullrefresh.Controller {
	return m.ctrl
}

// Refreshes returns how many times OnRefresh fired.
func (m *Model) Refreshes() int {
	return m.refreshes
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.collect()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.ctrl.Close()
			return m, tea.Quit
		case "r":
			m.startFetch("key")
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.MouseMsg:
		m.handleMouse(msg)

	case frameMsg:
		m.framing = false
		m.registry.Tick(time.Time(msg))
		m.flushScroll()

	case refreshDoneMsg:
		m.fetching = false
		m.items = append([]string{stampStyle.Render(fmt.Sprintf("Fresh item from refresh #%d", m.refreshes))}, m.items...)
		m.syncContent()
		m.ctrl.SetRefreshing(false)

	case spinner.TickMsg:
		m.pendingCmds = append(m.pendingCmds, m.indicator.update(msg))
	}

	m.layout()
	return m, m.collect()
}

// onRefresh answers a gesture commit the way a screen with a fetch would.
func (m *Model) onRefresh() {
	m.refreshes++
	m.startFetch("gesture")
}

func (m *Model) startFetch(source string) {
	if m.fetching {
		return
	}
	m.fetching = true
	m.log.Info("refresh started", "source", source, "refreshes", m.refreshes)
	m.ctrl.SetRefreshing(true)
	m.pendingCmds = append(m.pendingCmds, tea.Tick(m.refreshFor, func(time.Time) tea.Msg {
		return refreshDoneMsg{}
	}))
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		if !m.content.enabled {
			return
		}
		rows := 1
		if msg.Button == tea.MouseButtonWheelUp {
			rows = -1
		}
		m.content.scrollBy(rows)
		m.flushScroll()
		m.ctrl.ScrollDragEnd()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pressed = true
		m.originX, m.originY, m.lastY = msg.X, msg.Y, msg.Y
		m.ctrl.TouchStart()

	case msg.Action == tea.MouseActionMotion && m.pressed:
		if !m.ctrl.TouchMove(m.gesture(msg)) && m.content.enabled {
			// The native view follows the finger.
			m.content.scrollBy(m.lastY - msg.Y)
		}
		m.lastY = msg.Y
		m.flushScroll()

	case msg.Action == tea.MouseActionRelease && m.pressed:
		m.pressed = false
		m.ctrl.TouchEnd(m.gesture(msg))
		m.ctrl.ContentTouchEnd()
		m.flushScroll()
	}
}

func (m *Model) gesture(msg tea.MouseMsg) pullrefresh.Gesture {
	return pullrefresh.Gesture{
		DX: float32(msg.X-m.originX) * rowUnits,
		DY: float32(msg.Y-m.originY) * rowUnits,
	}
}

// flushScroll delivers queued content offsets as native scroll events.
func (m *Model) flushScroll() {
	for _, y := range m.content.takePending() {
		m.ctrl.NativeScroll(y)
	}
}

func (m *Model) syncContent() {
	offset := m.content.vp.YOffset
	m.content.vp.SetContent(strings.Join(m.items, "\n"))
	m.content.vp.SetYOffset(offset)
}

// layout sizes the viewport to whatever the indicator band leaves.
func (m *Model) layout() {
	m.content.vp.Width = m.width
	h := m.height - m.bandRows() - 1
	if h < 1 {
		h = 1
	}
	m.content.vp.Height = h
}

func (m *Model) bandRows() int {
	return int(m.ctrl.PullHeight() / rowUnits)
}

// collect gathers commands queued by callbacks during the last message and
// schedules the next frame while a spring is running.
func (m *Model) collect() tea.Cmd {
	cmds := m.pendingCmds
	m.pendingCmds = nil
	if cmd := m.indicator.cmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.registry.HasActive() && !m.framing {
		m.framing = true
		cmds = append(cmds, tea.Tick(frameInterval, func(t time.Time) tea.Msg {
			return frameMsg(t)
		}))
	}
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	var sections []string
	if rows := m.bandRows(); rows > 0 {
		sections = append(sections, m.bandView(rows))
	}
	sections = append(sections, m.content.vp.View(), m.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) bandView(rows int) string {
	var text string
	switch m.ctrl.State() {
	case pullrefresh.Refreshing, pullrefresh.Committing:
		text = m.indicator.View() + " " + hintStyle.Render("Refreshing")
	case pullrefresh.Retracting:
		text = hintStyle.Render("Done")
	default:
		if m.ctrl.PullDistance() >= m.ctrl.Config().PullThreshold {
			text = hintStyle.Render("Release to refresh")
		} else {
			text = hintStyle.Render("Pull to refresh")
		}
	}
	return lipgloss.NewStyle().
		Background(m.background).
		Width(m.width).
		Height(rows).
		Align(lipgloss.Center, lipgloss.Bottom).
		Render(text)
}

func (m *Model) statusView() string {
	return statusStyle.Render(fmt.Sprintf(
		"state=%s lock=%s scroll=%.0f pull=%.0f refreshes=%d  drag to pull, wheel to scroll, r refresh, q quit",
		m.ctrl.State(), m.ctrl.ScrollLock(), m.ctrl.ScrollOffset(), m.ctrl.PullHeight(), m.refreshes,
	))
}

// indicatorStyle turns the opaque indicator style map into a spinner style.
// Recognized keys are color, background and bold.
func indicatorStyle(props map[string]string) lipgloss.Style {
	style := spinnerStyle
	if c, ok := props["color"]; ok {
		style = style.Foreground(colorFor(c))
	}
	if c, ok := props["background"]; ok {
		style = style.Background(colorFor(c))
	}
	if props["bold"] == "true" {
		style = style.Bold(true)
	}
	return style
}
