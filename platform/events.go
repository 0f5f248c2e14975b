package platform

import "fmt"

// Size is a window or surface extent in physical pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// IsZero reports whether either dimension is zero (minimized window).
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

type KeyState int

const (
	Released KeyState = iota
	Pressed
)

type KeyEvent struct {
	Key      Key
	Scancode int
	State    KeyState
	Repeat   bool
}

func (e KeyEvent) IsPressed() bool {
	return e.State == Pressed
}

type EventKind int

const (
	EventKeyboard EventKind = iota
	EventResized
	EventScaleFactorChanged
	EventCloseRequested
	EventRedrawRequested
	EventIdle
)

var eventKindNames = [...]string{
	EventKeyboard:           "keyboard",
	EventResized:            "resized",
	EventScaleFactorChanged: "scale-factor-changed",
	EventCloseRequested:     "close-requested",
	EventRedrawRequested:    "redraw-requested",
	EventIdle:               "idle",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one platform notification. Key is set for EventKeyboard,
// Size for EventResized and EventScaleFactorChanged.
type Event struct {
	Kind EventKind
	Key  KeyEvent
	Size Size
}

func KeyboardEvent(ev KeyEvent) Event {
	return Event{Kind: EventKeyboard, Key: ev}
}

func ResizedEvent(size Size) Event {
	return Event{Kind: EventResized, Size: size}
}

// Queue buffers events in arrival order between polls.
type Queue struct {
	events []Event
	redraw bool
}

func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// RequestRedraw schedules a single EventRedrawRequested for the next drain.
// Repeated requests before the drain coalesce.
func (q *Queue) RequestRedraw() {
	q.redraw = true
}

// Drain returns the buffered events, followed by a pending redraw request
// and a trailing idle tick, and empties the queue.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = nil
	if q.redraw {
		q.redraw = false
		out = append(out, Event{Kind: EventRedrawRequested})
	}
	return append(out, Event{Kind: EventIdle})
}
