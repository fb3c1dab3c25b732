// Package pullrefresh implements the interaction logic of a pull-to-refresh
// container: it arbitrates one touch stream between a pull indicator and a
// wrapped native scroll view, and drives the indicator through commit and
// retract animations.
//
// A Controller is single-threaded. Deliver input, property updates and the
// animation registry's Tick from the same goroutine.
package pullrefresh

import (
	"fmt"
	"log/slog"

	"github.com/agiangrant/pullrefresh/retained"
)

// ContentView is the wrapped scrollable element.
type ContentView interface {
	// SetScrollEnabled toggles native scrolling. Disabled while the pull
	// gesture owns the touch stream.
	SetScrollEnabled(enabled bool)

	// ScrollTo scrolls the content to a vertical offset. The view reports the
	// resulting offset back through Controller.NativeScroll.
	ScrollTo(y float32, animated bool)
}

// Props are supplied by the owning screen and may change over the
// controller's lifetime.
type Props struct {
	// IsRefreshing is the caller's declared refresh-in-progress state.
	IsRefreshing bool

	// OnRefresh is invoked once per gesture commit. It may call SetRefreshing
	// or SetProps before returning. Until IsRefreshing is raised (or the
	// commit is cleared with SetRefreshing(false)) the indicator stays open
	// and further pulls are ignored; the content can still be scrolled.
	OnRefresh func()

	// Content is the wrapped scroll view.
	Content ContentView

	// OnScroll, if set, receives every native scroll offset.
	OnScroll func(offsetY float32)

	// OnPullHeight, if set, receives the displayed indicator height whenever
	// it changes. Bind the content's top margin or translation to it.
	OnPullHeight func(height float32)
}

func (p Props) validate() error {
	if p.OnRefresh == nil {
		return ErrMissingRefreshFunc
	}
	if p.Content == nil {
		return ErrMissingContent
	}
	return nil
}

type nopIndicator struct{}

func (nopIndicator) Play()  {}
func (nopIndicator) Reset() {}

// Controller is one mounted pull-to-refresh container.
type Controller struct {
	cfg   Config
	props Props
	log   *slog.Logger

	arbiter arbiter
	machine machine
	tracker tracker

	closed bool
}

// New mounts a controller. Springs run on registry, which the host must Tick.
// Missing required props or out-of-range config fail here rather than at the
// first gesture.
func New(cfg Config, props Props, registry *retained.AnimationRegistry) (*Controller, error) {
	if registry == nil {
		return nil, ErrMissingRegistry
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := props.validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}

	cfg = cfg.withDefaults()
	if cfg.Indicator == nil {
		cfg.Indicator = nopIndicator{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		cfg:   cfg,
		props: props,
		log:   logger.With("component", "pullrefresh"),
		arbiter: arbiter{
			owner:    ArbiterOwns,
			deadZone: cfg.DeadZone,
		},
	}
	c.machine.offset = retained.NewValue(registry, 0, cfg.SpringConfig(), c.offsetChanged)

	// The pull gesture owns the touch stream until content scrolls away from the top.
	props.Content.SetScrollEnabled(false)

	if props.IsRefreshing {
		c.setRefreshing(true)
	}
	return c, nil
}

// SetProps applies a property update from the owning screen. A change of
// IsRefreshing drives the programmatic commit or the retract.
func (c *Controller) SetProps(props Props) error {
	if err := props.validate(); err != nil {
		return fmt.Errorf("set props: %w", err)
	}
	c.props = props
	if c.closed {
		return nil
	}
	props.Content.SetScrollEnabled(c.arbiter.owner == NativeOwns)
	c.setRefreshing(props.IsRefreshing)
	return nil
}

// SetRefreshing updates only the IsRefreshing property.
func (c *Controller) SetRefreshing(refreshing bool) {
	c.props.IsRefreshing = refreshing
	if c.closed {
		return
	}
	c.setRefreshing(refreshing)
}

// Close unmounts the controller: any spring in flight stops and later input
// is ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.machine.offset.SetTo(c.machine.offset.Current())
	c.log.Debug("controller closed", "state", c.machine.state)
}

// State returns the pull state.
func (c *Controller) State() State {
	return c.machine.state
}

// IsRefreshing returns the mirrored caller flag.
func (c *Controller) IsRefreshing() bool {
	return c.machine.refreshing
}

// ScrollLock reports which consumer owns the touch stream.
func (c *Controller) ScrollLock() Owner {
	return c.arbiter.owner
}

// ScrollOffset returns the last native scroll offset of the content.
func (c *Controller) ScrollOffset() float32 {
	return c.tracker.offsetY
}

// PullHeight returns the displayed indicator height, clamped to [0, OpenHeight].
func (c *Controller) PullHeight() float32 {
	open := c.cfg.OpenHeight
	return retained.Interpolate(c.machine.offset.Current(), -open, 0, open, 0)
}

// PullDistance returns the unclamped pull distance compared against the
// threshold on release.
func (c *Controller) PullDistance() float32 {
	d := -c.machine.offset.Current()
	if d < 0 {
		return 0
	}
	return d
}

// Config returns the effective configuration, defaults applied.
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) offsetChanged(float32) {
	if c.props.OnPullHeight != nil {
		c.props.OnPullHeight(c.PullHeight())
	}
}
