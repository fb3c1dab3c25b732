package pullrefresh

import "github.com/agiangrant/pullrefresh/retained"

// State is the pull indicator's lifecycle state.
type State uint8

const (
	// Idle: indicator closed (or springing closed after a short pull), not refreshing.
	Idle State = iota
	// Pulling: a drag holds the indicator partly open.
	Pulling
	// Committing: a release crossed the threshold and the refresh callback fired;
	// waiting for the caller to raise IsRefreshing.
	Committing
	// Refreshing: the caller's flag is up and the indicator is held open.
	Refreshing
	// Retracting: the caller cleared its flag and the indicator is springing closed.
	Retracting
)

var stateNames = [...]string{
	Idle:       "idle",
	Pulling:    "pulling",
	Committing: "committing",
	Refreshing: "refreshing",
	Retracting: "retracting",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// machine is the pull state. The offset is stored negative toward open.
type machine struct {
	state      State
	refreshing bool
	offset     *retained.Value
}

// locked reports whether a commit is pending or in progress. No new pull may
// begin and releases are no-ops.
func (m *machine) locked() bool {
	return m.refreshing || m.state == Committing
}

func (c *Controller) transition(to State, reason string) {
	if c.machine.state == to {
		return
	}
	c.log.Debug("pull state transition",
		"from", c.machine.state,
		"to", to,
		"reason", reason,
		"pull", c.PullDistance(),
	)
	c.machine.state = to
}

// drag sets the pull distance from a damped finger position.
func (c *Controller) drag(distance float32) {
	if distance < 0 {
		distance = 0
	}
	c.machine.offset.SetTo(-distance)
	if distance > 0 {
		c.transition(Pulling, "drag")
	} else {
		c.transition(Idle, "drag")
	}
}

// gestureEnd evaluates the threshold after a claimed release.
func (c *Controller) gestureEnd() {
	if c.machine.locked() {
		c.log.Debug("release ignored while refresh is pending", "state", c.machine.state)
		return
	}
	if c.machine.state != Pulling {
		return
	}

	distance := c.PullDistance()
	switch {
	case distance >= c.cfg.PullThreshold:
		c.commitFromGesture()
	case distance > 0:
		c.transition(Idle, "below threshold")
		c.machine.offset.SpringTo(0, nil)
	default:
		c.transition(Idle, "released closed")
	}
}

// commitFromGesture fires the refresh callback once, then opens the indicator.
// The callback may update props re-entrantly; if it already moved the machine
// past this commit, the remaining side effects are skipped.
func (c *Controller) commitFromGesture() {
	c.transition(Committing, "threshold reached")
	c.props.OnRefresh()

	if c.closed || (c.machine.state != Committing && c.machine.state != Refreshing) {
		return
	}
	c.open()
}

// open plays the indicator and springs to the open height.
func (c *Controller) open() {
	c.cfg.Indicator.Play()
	c.machine.offset.SpringTo(-c.cfg.OpenHeight, nil)
}

// setRefreshing reacts to a change of the caller's flag.
func (c *Controller) setRefreshing(refreshing bool) {
	if refreshing == c.machine.refreshing {
		return
	}
	c.machine.refreshing = refreshing

	if refreshing {
		if c.machine.state == Committing {
			// Already opened by our own commit.
			c.transition(Refreshing, "caller confirmed refresh")
			return
		}
		c.transition(Refreshing, "caller started refresh")
		c.open()
		return
	}

	c.transition(Retracting, "caller finished refresh")
	c.cfg.Indicator.Reset()
	c.machine.offset.SpringTo(0, func() {
		if c.machine.state == Retracting {
			c.transition(Idle, "retracted")
		}
	})
}
