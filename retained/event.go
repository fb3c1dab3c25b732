package retained

import "sync"

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	// Touch sequence on the pull container
	EventTouchStart EventType = iota + 1
	EventTouchMove
	EventTouchEnd
	EventTouchCancel // Interrupted by the host (another responder took over)

	// Native scroll events from the wrapped content
	EventScroll
	EventScrollDragEnd
	EventContentTouchEnd
)

var eventTypeNames = [...]string{
	EventTouchStart:      "touch-start",
	EventTouchMove:       "touch-move",
	EventTouchEnd:        "touch-end",
	EventTouchCancel:     "touch-cancel",
	EventScroll:          "scroll",
	EventScrollDragEnd:   "scroll-drag-end",
	EventContentTouchEnd: "content-touch-end",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) && eventTypeNames[t] != "" {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ============================================================================
// Event Interface and Base
// ============================================================================

// Event is the interface for all events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// PreventDefault tells the host the native view must not consume this event.
	PreventDefault()

	// IsDefaultPrevented returns true if default was prevented.
	IsDefaultPrevented() bool
}

// eventBase provides common event functionality.
type eventBase struct {
	eventType        EventType
	defaultPrevented bool
}

func (e *eventBase) Type() EventType          { return e.eventType }
func (e *eventBase) PreventDefault()          { e.defaultPrevented = true }
func (e *eventBase) IsDefaultPrevented() bool { return e.defaultPrevented }

// ============================================================================
// Gesture Event
// ============================================================================

// GestureEvent is one frame of a touch sequence.
type GestureEvent struct {
	eventBase

	// Cumulative movement since the touch started. Positive DY is downward.
	DX, DY float32
}

// NewGestureEvent creates a gesture event. Uses object pool for high-frequency events.
func NewGestureEvent(eventType EventType, dx, dy float32) *GestureEvent {
	e := gestureEventPool.Get().(*GestureEvent)
	e.eventType = eventType
	e.defaultPrevented = false
	e.DX = dx
	e.DY = dy
	return e
}

// Release returns the event to the pool. Call when done processing.
func (e *GestureEvent) Release() {
	gestureEventPool.Put(e)
}

// Object pool for gesture events to avoid allocations on every move frame
var gestureEventPool = sync.Pool{
	New: func() any {
		return &GestureEvent{}
	},
}

// ============================================================================
// Scroll Event
// ============================================================================

// ScrollEvent reports the wrapped content's scroll state.
type ScrollEvent struct {
	eventBase

	// Vertical content offset. Only meaningful for EventScroll.
	OffsetY float32
}

// NewScrollEvent creates a scroll event.
func NewScrollEvent(eventType EventType, offsetY float32) *ScrollEvent {
	return &ScrollEvent{
		eventBase: eventBase{
			eventType: eventType,
		},
		OffsetY: offsetY,
	}
}
