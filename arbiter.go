package pullrefresh

// Owner says which consumer currently owns the touch stream.
type Owner uint8

const (
	// ArbiterOwns means touches drive the pull gesture and native scrolling is off.
	ArbiterOwns Owner = iota
	// NativeOwns means the wrapped content scrolls natively and pulls are locked out.
	NativeOwns
)

func (o Owner) String() string {
	switch o {
	case ArbiterOwns:
		return "arbiter"
	case NativeOwns:
		return "native"
	default:
		return "unknown"
	}
}

// Gesture is the cumulative movement of a touch sequence since it started.
// Positive DY is downward.
type Gesture struct {
	DX, DY float32
}

// arbiter holds the scroll lock and the claim for the current touch sequence.
type arbiter struct {
	owner    Owner
	deadZone float32
	claimed  bool
}

func (a *arbiter) shouldClaimStart() bool {
	return a.owner == ArbiterOwns
}

// shouldClaimMove keeps taps and tiny jitters away from the pull gesture.
func (a *arbiter) shouldClaimMove(g Gesture) bool {
	if a.owner != ArbiterOwns {
		return false
	}
	return abs(g.DX) > a.deadZone || abs(g.DY) > a.deadZone
}

// abs returns the absolute value of a float32.
func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// TouchStart begins a touch sequence. It reports whether the controller
// claimed it; if not, the host should let the native view handle it.
func (c *Controller) TouchStart() bool {
	if c.closed {
		return false
	}
	c.arbiter.claimed = c.arbiter.shouldClaimStart()
	return c.arbiter.claimed
}

// TouchMove delivers one move frame. An unclaimed sequence may still be
// claimed here once it leaves the dead zone. Reports whether the controller
// handled the frame.
func (c *Controller) TouchMove(g Gesture) bool {
	if c.closed {
		return false
	}
	if !c.arbiter.claimed {
		if !c.arbiter.shouldClaimMove(g) {
			return false
		}
		c.arbiter.claimed = true
	}
	c.routeMove(g)
	return true
}

// routeMove sends a downward drag at the top to the pull indicator and
// everything else to the content as a scroll. While a refresh is pending the
// pull side is frozen but the content still scrolls.
func (c *Controller) routeMove(g Gesture) {
	if g.DY >= 0 && (c.tracker.atTop() || c.PullDistance() > 0) {
		if c.machine.locked() {
			return
		}
		c.drag(g.DY * c.cfg.DampingFactor)
		return
	}
	// Upward drag, or content already scrolled: hand the delta to the content.
	// The pull offset is left where it is.
	c.props.Content.ScrollTo(-g.DY, true)
}

// TouchEnd finishes a touch sequence.
func (c *Controller) TouchEnd(g Gesture) {
	if c.closed {
		return
	}
	c.release()
}

// TouchCancel handles a sequence interrupted by the host. It is treated
// exactly like a release.
func (c *Controller) TouchCancel(g Gesture) {
	if c.closed {
		return
	}
	c.release()
}

func (c *Controller) release() {
	claimed := c.arbiter.claimed
	c.arbiter.claimed = false
	if !claimed {
		return
	}

	c.gestureEnd()

	if c.tracker.offsetY > 0 && c.arbiter.owner == ArbiterOwns {
		c.setOwner(NativeOwns)
	}
}

func (c *Controller) setOwner(owner Owner) {
	if c.arbiter.owner == owner {
		return
	}
	c.log.Debug("scroll lock changed", "from", c.arbiter.owner, "to", owner, "scroll_y", c.tracker.offsetY)
	c.arbiter.owner = owner
	c.props.Content.SetScrollEnabled(owner == NativeOwns)
}
