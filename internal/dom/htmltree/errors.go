package htmltree

import (
	"errors"

	"github.com/dshills/attachevents/internal/dom"
)

// ErrForeignNode is returned when a node from another tree is passed in.
var ErrForeignNode = errors.New("node does not belong to this document")

// SelectorSyntaxError reports a selector cascadia could not compile.
type SelectorSyntaxError struct {
	// Selector is the offending selector text.
	Selector string

	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *SelectorSyntaxError) Error() string {
	return "selector " + quote(e.Selector) + ": " + e.Err.Error()
}

// Unwrap returns the underlying parse error.
func (e *SelectorSyntaxError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is to match SelectorSyntaxError with dom.ErrSelectorSyntax.
func (e *SelectorSyntaxError) Is(target error) bool {
	return target == dom.ErrSelectorSyntax
}

// PanicError describes a listener that panicked during dispatch.
type PanicError struct {
	// EventType is the type of the event being delivered.
	EventType string

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "listener panic during " + quote(e.EventType) + " dispatch"
}

func quote(s string) string {
	return "\"" + s + "\""
}
