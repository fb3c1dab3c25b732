package script

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/agiangrant/pullrefresh"
	"github.com/agiangrant/pullrefresh/retained"
)

// FrameInterval is the virtual animation frame length.
const FrameInterval = 16 * time.Millisecond

// Entry is the observed state after one step.
type Entry struct {
	At         time.Duration
	Step       string
	State      pullrefresh.State
	Lock       pullrefresh.Owner
	PullHeight float32
	ScrollY    float32
	Refreshing bool
	Note       string
}

// Trace is the result of a run.
type Trace struct {
	Name         string
	Entries      []Entry
	RefreshCalls int
	Plays        int
	Resets       int
	Failures     []string
}

// Passed reports whether every expectation held.
func (t *Trace) Passed() bool {
	return len(t.Failures) == 0
}

// Run replays s against a fresh controller built from base plus the script's
// overrides. Timers, native scroll echoes and caller reactions are queued and
// delivered between steps and frames, like a host event loop would.
func Run(s *Script, base pullrefresh.Config, logger *slog.Logger) (*Trace, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sim := &simulation{
		script: s,
		trace:  &Trace{Name: s.Name},
		clock:  time.Unix(0, 0),
		log:    logger.With("script", s.Name),
	}
	sim.start = sim.clock

	cfg := s.Config.Apply(base)
	cfg.Indicator = &countingIndicator{trace: sim.trace}
	cfg.Logger = logger

	sim.registry = retained.NewAnimationRegistry()
	sim.view = newScrollView(sim, s.Content)
	ctrl, err := pullrefresh.New(cfg, pullrefresh.Props{
		OnRefresh: sim.onRefresh,
		Content:   sim.view,
	}, sim.registry)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", s.Name, err)
	}
	sim.ctrl = ctrl
	defer ctrl.Close()

	for i, step := range s.Steps {
		note := sim.apply(step)
		sim.drain()
		entry := sim.snapshot(step, note)
		sim.trace.Entries = append(sim.trace.Entries, entry)
		if step.Expect != nil {
			for _, f := range step.Expect.check(entry, sim.trace) {
				sim.trace.Failures = append(sim.trace.Failures, fmt.Sprintf("step %d (%s): %s", i+1, step, f))
			}
		}
	}
	return sim.trace, nil
}

type timer struct {
	at time.Time
	fn func()
}

type simulation struct {
	script   *Script
	trace    *Trace
	ctrl     *pullrefresh.Controller
	registry *retained.AnimationRegistry
	view     *scrollView
	log      *slog.Logger

	start  time.Time
	clock  time.Time
	queue  []func()
	timers []timer
}

func (sim *simulation) post(fn func()) {
	sim.queue = append(sim.queue, fn)
}

func (sim *simulation) drain() {
	for len(sim.queue) > 0 {
		fn := sim.queue[0]
		sim.queue = sim.queue[1:]
		fn()
	}
}

func (sim *simulation) after(d time.Duration, fn func()) {
	sim.timers = append(sim.timers, timer{at: sim.clock.Add(d), fn: fn})
	sort.SliceStable(sim.timers, func(i, j int) bool { return sim.timers[i].at.Before(sim.timers[j].at) })
}

func (sim *simulation) onRefresh() {
	sim.trace.RefreshCalls++
	sim.log.Debug("refresh requested", "calls", sim.trace.RefreshCalls)
	if !sim.script.Caller.AutoConfirm {
		return
	}
	sim.post(func() {
		sim.ctrl.SetRefreshing(true)
		if d := sim.script.Caller.RefreshFor; d > 0 {
			sim.after(d, func() { sim.ctrl.SetRefreshing(false) })
		}
	})
}

func (sim *simulation) apply(step Step) string {
	g := pullrefresh.Gesture{DX: step.DX, DY: step.DY}
	switch {
	case step.Touch == TouchStart:
		if !sim.ctrl.TouchStart() {
			return "not claimed"
		}
	case step.Touch == TouchMove:
		if !sim.ctrl.TouchMove(g) {
			return "not claimed"
		}
	case step.Touch == TouchEnd:
		sim.ctrl.TouchEnd(g)
	case step.Touch == TouchCancel:
		sim.ctrl.TouchCancel(g)
	case step.Wait > 0:
		sim.advance(step.Wait)
	case step.Refreshing != nil:
		sim.ctrl.SetRefreshing(*step.Refreshing)
	case step.Scroll != nil:
		if !sim.view.enabled {
			return "ignored: native scrolling disabled"
		}
		sim.view.ScrollTo(*step.Scroll, false)
	case step.Content == ContentTouchEnd:
		sim.ctrl.ContentTouchEnd()
	case step.Content == ContentDragEnd:
		sim.ctrl.ScrollDragEnd()
	}
	return ""
}

// advance moves the virtual clock forward frame by frame, firing due timers
// and ticking springs.
func (sim *simulation) advance(d time.Duration) {
	end := sim.clock.Add(d)
	for sim.clock.Before(end) {
		next := sim.clock.Add(FrameInterval)
		if next.After(end) {
			next = end
		}
		sim.clock = next

		for len(sim.timers) > 0 && !sim.timers[0].at.After(sim.clock) {
			t := sim.timers[0]
			sim.timers = sim.timers[1:]
			t.fn()
			sim.drain()
		}

		sim.registry.Tick(sim.clock)
		sim.drain()
	}
}

func (sim *simulation) snapshot(step Step, note string) Entry {
	return Entry{
		At:         sim.clock.Sub(sim.start),
		Step:       step.String(),
		State:      sim.ctrl.State(),
		Lock:       sim.ctrl.ScrollLock(),
		PullHeight: sim.ctrl.PullHeight(),
		ScrollY:    sim.ctrl.ScrollOffset(),
		Refreshing: sim.ctrl.IsRefreshing(),
		Note:       note,
	}
}

func (e *Expectation) check(entry Entry, trace *Trace) []string {
	var failures []string
	if e.State != "" && e.State != entry.State.String() {
		failures = append(failures, fmt.Sprintf("state = %s, want %s", entry.State, e.State))
	}
	if e.Lock != "" && e.Lock != entry.Lock.String() {
		failures = append(failures, fmt.Sprintf("lock = %s, want %s", entry.Lock, e.Lock))
	}
	if e.PullHeight != nil && math.Abs(float64(entry.PullHeight-*e.PullHeight)) > 0.01 {
		failures = append(failures, fmt.Sprintf("pull_height = %g, want %g", entry.PullHeight, *e.PullHeight))
	}
	if e.ScrollY != nil && math.Abs(float64(entry.ScrollY-*e.ScrollY)) > 0.01 {
		failures = append(failures, fmt.Sprintf("scroll_y = %g, want %g", entry.ScrollY, *e.ScrollY))
	}
	if e.RefreshCalls != nil && *e.RefreshCalls != trace.RefreshCalls {
		failures = append(failures, fmt.Sprintf("refresh_calls = %d, want %d", trace.RefreshCalls, *e.RefreshCalls))
	}
	return failures
}

// scrollView is a simulated native scroll view. Every offset it reaches is
// echoed back to the controller as a native scroll event.
type scrollView struct {
	area    *retained.ScrollArea
	animate bool
	enabled bool
}

func newScrollView(sim *simulation, setup ContentSetup) *scrollView {
	area := retained.NewScrollArea(sim.registry, setup.Height, setup.Viewport, retained.DefaultScrollToConfig(), func(y float32) {
		sim.post(func() { sim.ctrl.NativeScroll(y) })
	})
	return &scrollView{area: area, animate: setup.AnimateScroll}
}

func (v *scrollView) SetScrollEnabled(enabled bool) {
	v.enabled = enabled
}

func (v *scrollView) ScrollTo(y float32, animated bool) {
	v.area.ScrollTo(y, animated && v.animate)
}

type countingIndicator struct {
	trace *Trace
}

func (c *countingIndicator) Play()  { c.trace.Plays++ }
func (c *countingIndicator) Reset() { c.trace.Resets++ }
