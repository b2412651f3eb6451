package dom

import "time"

// Well-known event types used by the binder and hosts.
const (
	TypeKeyPress = "keypress"
	TypeKeyDown  = "keydown"
	TypeKeyUp    = "keyup"
	TypeClick    = "click"
	TypeFocus    = "focus"
	TypeBlur     = "blur"
)

// nonBubbling lists event types that are delivered to their target only.
var nonBubbling = map[string]bool{
	TypeFocus:    true,
	TypeBlur:     true,
	"mouseenter": true,
	"mouseleave": true,
	"load":       true,
	"unload":     true,
	"scroll":     true,
}

// Event is a single occurrence delivered to listeners.
type Event struct {
	// Type is the event type name (e.g., "click", "keypress").
	Type string

	// Which is the character code for key events, 0 otherwise.
	Which int

	// Key is the printable form of the pressed key for key events.
	Key string

	// Target is the node the event was dispatched to.
	Target Node

	// CurrentTarget is the node whose listeners are currently running.
	CurrentTarget Node

	// Bubbles reports whether the event travels to ancestors after the target.
	Bubbles bool

	// Timestamp is when the event was created.
	Timestamp time.Time

	stopped   bool
	prevented bool
}

// NewEvent creates an event of the given type. Bubbling follows DOM rules
// for the well-known non-bubbling types.
func NewEvent(eventType string) *Event {
	return &Event{
		Type:      eventType,
		Bubbles:   !nonBubbling[eventType],
		Timestamp: time.Now(),
	}
}

// NewKeyPress creates a key-press event for the character r.
func NewKeyPress(r rune) *Event {
	return NewKeyEvent(TypeKeyPress, r)
}

// NewKeyEvent creates a key event of the given type for the character r.
func NewKeyEvent(eventType string, r rune) *Event {
	ev := NewEvent(eventType)
	ev.Which = int(r)
	ev.Key = string(r)
	return ev
}

// Char decodes the pressed character from Which.
func (e *Event) Char() string {
	if e.Which <= 0 {
		return ""
	}
	return string(rune(e.Which))
}

// StopPropagation prevents delivery to further nodes on the bubbling path.
// Listeners already registered on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.stopped
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}
