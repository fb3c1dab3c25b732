package pullrefresh

import "github.com/agiangrant/pullrefresh/retained"

// ============================================================================
// Event Dispatch
// ============================================================================

// HandleEvent routes a host event to the controller. Touch events the
// controller claims are marked with PreventDefault so the host keeps them away
// from the native scroll view. Returns true if the controller consumed the event.
func (c *Controller) HandleEvent(event retained.Event) bool {
	switch e := event.(type) {
	case *retained.GestureEvent:
		return c.handleGesture(e)
	case *retained.ScrollEvent:
		c.handleScroll(e)
		return false
	default:
		return false
	}
}

func (c *Controller) handleGesture(e *retained.GestureEvent) bool {
	g := Gesture{DX: e.DX, DY: e.DY}

	var claimed bool
	switch e.Type() {
	case retained.EventTouchStart:
		claimed = c.TouchStart()
	case retained.EventTouchMove:
		claimed = c.TouchMove(g)
	case retained.EventTouchEnd:
		claimed = c.arbiter.claimed
		c.TouchEnd(g)
	case retained.EventTouchCancel:
		claimed = c.arbiter.claimed
		c.TouchCancel(g)
	default:
		return false
	}

	if claimed {
		e.PreventDefault()
	}
	return claimed
}

// Scroll notifications always reach the native view as well; the controller
// only observes them.
func (c *Controller) handleScroll(e *retained.ScrollEvent) {
	switch e.Type() {
	case retained.EventScroll:
		c.NativeScroll(e.OffsetY)
	case retained.EventScrollDragEnd:
		c.ScrollDragEnd()
	case retained.EventContentTouchEnd:
		c.ContentTouchEnd()
	}
}
