package pullrefresh

// tracker mirrors the wrapped content's vertical scroll offset.
type tracker struct {
	offsetY float32
}

func (t *tracker) atTop() bool {
	return t.offsetY == 0
}

// NativeScroll records a scroll offset reported by the content. Negative
// offsets (overscroll bounce) count as the top.
func (c *Controller) NativeScroll(offsetY float32) {
	if c.closed {
		return
	}
	if offsetY < 0 {
		offsetY = 0
	}
	c.tracker.offsetY = offsetY
	if c.props.OnScroll != nil {
		c.props.OnScroll(offsetY)
	}
}

// ContentTouchEnd is the content's own touch-end notification.
func (c *Controller) ContentTouchEnd() {
	c.releaseLockAtTop()
}

// ScrollDragEnd is the content's end-of-drag notification.
func (c *Controller) ScrollDragEnd() {
	c.releaseLockAtTop()
}

// releaseLockAtTop hands the touch stream back to the pull gesture once the
// content is back at the top. It is only checked on the two notifications
// above, so a pull cannot start between reaching the top and the next one.
func (c *Controller) releaseLockAtTop() {
	if c.closed {
		return
	}
	if c.tracker.atTop() && c.arbiter.owner == NativeOwns {
		c.setOwner(ArbiterOwns)
	}
}
