// Package classify decides what a behavior key names.
//
// Every key resolves to exactly one Kind by a priority-ordered test:
//
//  1. Selector  - the probe query succeeds and matches at least one node.
//  2. Keystroke - the key is exactly one character (code point).
//  3. Event     - anything else, taken as an event type name.
//
// The selector test strictly precedes the keystroke test: a one-character
// key that matches an element ("p") is a selector. The event catalog is
// never consulted.
//
// A probe that fails (a key that is not valid selector syntax) is handled by
// Policy: FallThrough continues with the keystroke and event tests, Propagate
// yields Invalid so the caller can report the key.
//
// Classify is pure. It performs no binding and touches the tree only
// through the Probe it is given, which makes it testable without a tree.
package classify
