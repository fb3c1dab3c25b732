package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowUnits is how many controller units one terminal row represents.
const rowUnits = 20

// contentView adapts a viewport to pullrefresh.ContentView. Offsets it
// reaches are queued and reported back to the controller by the model, the
// way a native view emits scroll events after a scrollTo.
type contentView struct {
	vp      viewport.Model
	enabled bool
	pending []float32
}

func newContentView() *contentView {
	return &contentView{vp: viewport.New(0, 0)}
}

func (c *contentView) SetScrollEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *contentView) ScrollTo(y float32, animated bool) {
	c.setRow(int(y / rowUnits))
}

func (c *contentView) setRow(row int) {
	c.vp.SetYOffset(row)
	c.pending = append(c.pending, c.offset())
}

func (c *contentView) scrollBy(rows int) {
	c.setRow(c.vp.YOffset + rows)
}

func (c *contentView) offset() float32 {
	return float32(c.vp.YOffset) * rowUnits
}

func (c *contentView) takePending() []float32 {
	p := c.pending
	c.pending = nil
	return p
}

// spinnerIndicator adapts a bubbles spinner to pullrefresh.Indicator.
// Reset swaps in a fresh spinner so ticks already in flight are dropped by
// their stale ID.
type spinnerIndicator struct {
	model   spinner.Model
	style   lipgloss.Style
	playing bool
	pending bool
}

func newSpinnerIndicator(style lipgloss.Style) *spinnerIndicator {
	s := &spinnerIndicator{style: style}
	s.model = s.fresh()
	return s
}

func (s *spinnerIndicator) fresh() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.style))
}

func (s *spinnerIndicator) Play() {
	if s.playing {
		return
	}
	s.playing = true
	s.pending = true
}

func (s *spinnerIndicator) Reset() {
	s.playing = false
	s.pending = false
	s.model = s.fresh()
}

// cmd returns the first tick after Play, once.
func (s *spinnerIndicator) cmd() tea.Cmd {
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.model.Tick
}

func (s *spinnerIndicator) update(msg spinner.TickMsg) tea.Cmd {
	if !s.playing {
		return nil
	}
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return cmd
}

func (s *spinnerIndicator) View() string {
	return s.model.View()
}
