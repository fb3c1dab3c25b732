package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agiangrant/pullrefresh"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(Options{
		Config:     pullrefresh.DefaultConfig(),
		RefreshFor: time.Second,
		Lines:      50,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}

func wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: button}
}

// settle runs frames until every spring has finished.
func settle(m *Model) {
	now := time.Now()
	for i := 0; i < 10 && m.registry.HasActive(); i++ {
		m.Update(frameMsg(now))
		now = now.Add(time.Second)
	}
}

func TestDragCommitsRefresh(t *testing.T) {
	m := newTestModel(t)
	ctrl := m.Controller()

	m.Update(press(10, 5))
	m.Update(motion(10, 15))
	if ctrl.State() != pullrefresh.Pulling {
		t.Fatalf("state after drag = %v, want pulling", ctrl.State())
	}
	if got := ctrl.PullHeight(); got != 100 {
		t.Errorf("PullHeight() = %v, want 100", got)
	}
	if !strings.Contains(m.View(), "Release to refresh") {
		t.Errorf("View() missing release hint:\n%s", m.View())
	}

	m.Update(release(10, 15))
	if ctrl.State() != pullrefresh.Refreshing {
		t.Fatalf("state after release = %v, want refreshing", ctrl.State())
	}
	if m.Refreshes() != 1 {
		t.Errorf("Refreshes() = %d, want 1", m.Refreshes())
	}
	if !m.indicator.playing {
		t.Error("indicator not playing")
	}
	settle(m)
	if !strings.Contains(m.View(), "Refreshing") {
		t.Errorf("View() missing refreshing band:\n%s", m.View())
	}

	m.Update(refreshDoneMsg{})
	if ctrl.State() != pullrefresh.Retracting {
		t.Fatalf("state after fetch = %v, want retracting", ctrl.State())
	}
	if m.indicator.playing {
		t.Error("indicator still playing after reset")
	}
	if !strings.Contains(m.items[0], "Fresh item from refresh #1") {
		t.Errorf("first item = %q", m.items[0])
	}

	settle(m)
	if ctrl.State() != pullrefresh.Idle {
		t.Errorf("state after settle = %v, want idle", ctrl.State())
	}
	if ctrl.PullHeight() != 0 {
		t.Errorf("PullHeight() after settle = %v, want 0", ctrl.PullHeight())
	}
}

func TestShortDragRollsBack(t *testing.T) {
	m := newTestModel(t)

	m.Update(press(10, 5))
	m.Update(motion(10, 8))
	if !strings.Contains(m.View(), "Pull to refresh") {
		t.Errorf("View() missing pull hint:\n%s", m.View())
	}
	m.Update(release(10, 8))
	settle(m)

	if m.Refreshes() != 0 {
		t.Errorf("Refreshes() = %d, want 0", m.Refreshes())
	}
	if got := m.Controller().PullHeight(); got != 0 {
		t.Errorf("PullHeight() = %v, want 0", got)
	}
}

func TestWheelIgnoredWhilePullOwnsTouches(t *testing.T) {
	m := newTestModel(t)

	m.Update(wheel(tea.MouseButtonWheelDown))

	if got := m.Controller().ScrollOffset(); got != 0 {
		t.Errorf("ScrollOffset() = %v, want 0", got)
	}
	if got := m.Controller().ScrollLock(); got != pullrefresh.ArbiterOwns {
		t.Errorf("ScrollLock() = %v, want arbiter", got)
	}
}

func TestScrollHandoffRoundTrip(t *testing.T) {
	m := newTestModel(t)
	ctrl := m.Controller()

	// Drag up two rows: the content scrolls and keeps the touch stream.
	m.Update(press(10, 15))
	m.Update(motion(10, 13))
	if got := ctrl.ScrollOffset(); got != 40 {
		t.Fatalf("ScrollOffset() = %v, want 40", got)
	}
	m.Update(release(10, 13))
	if got := ctrl.ScrollLock(); got != pullrefresh.NativeOwns {
		t.Fatalf("ScrollLock() after release = %v, want native", got)
	}

	// A drag while native owns scrolls the view directly.
	m.Update(press(10, 10))
	m.Update(motion(10, 9))
	if got := ctrl.ScrollOffset(); got != 60 {
		t.Errorf("ScrollOffset() after native drag = %v, want 60", got)
	}
	if ctrl.PullHeight() != 0 {
		t.Errorf("PullHeight() = %v, want 0", ctrl.PullHeight())
	}
	m.Update(release(10, 9))

	for i := 0; i < 3; i++ {
		m.Update(wheel(tea.MouseButtonWheelUp))
	}
	if got := ctrl.ScrollOffset(); got != 0 {
		t.Fatalf("ScrollOffset() after wheel = %v, want 0", got)
	}
	if got := ctrl.ScrollLock(); got != pullrefresh.ArbiterOwns {
		t.Errorf("ScrollLock() at top = %v, want arbiter", got)
	}
}

func TestKeyRefreshSkipsCallback(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	ctrl := m.Controller()
	if ctrl.State() != pullrefresh.Refreshing || !ctrl.IsRefreshing() {
		t.Errorf("state = %v refreshing = %t, want refreshing", ctrl.State(), ctrl.IsRefreshing())
	}
	if m.Refreshes() != 0 {
		t.Errorf("Refreshes() = %d, want 0", m.Refreshes())
	}
	settle(m)
	if got := ctrl.PullHeight(); got != 100 {
		t.Errorf("PullHeight() = %v, want 100", got)
	}
}

func TestQuitClosesController(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command did not quit")
	}
	if m.Controller().TouchStart() {
		t.Error("closed controller claimed a touch")
	}
}

func TestIndicatorStyle(t *testing.T) {
	m, err := New(Options{Config: pullrefresh.Config{
		BackgroundColor: "navy",
		IndicatorStyle:  map[string]string{"color": "red", "bold": "true"},
	}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if m.background != "17" {
		t.Errorf("background = %q, want 17", m.background)
	}
	if !m.indicator.style.GetBold() {
		t.Error("indicator style not bold")
	}
	if got := m.indicator.style.GetForeground(); got != colorFor("red") {
		t.Errorf("indicator foreground = %v, want red", got)
	}
}
