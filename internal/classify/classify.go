package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind is the variant a key resolves to.
type Kind int

const (
	// Event keys are attached directly as listeners for that event type.
	Event Kind = iota

	// Selector keys recurse into the matched nodes.
	Selector

	// Keystroke keys are collected into the per-root keymap.
	Keystroke

	// Invalid keys failed the selector probe under the Propagate policy.
	Invalid
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Event:
		return "event"
	case Selector:
		return "selector"
	case Keystroke:
		return "keystroke"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Policy decides what a failed selector probe means.
type Policy int

const (
	// FallThrough treats a failed probe as "not a selector".
	FallThrough Policy = iota

	// Propagate reports a failed probe as Invalid.
	Propagate
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case FallThrough:
		return "fallthrough"
	case Propagate:
		return "propagate"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a configuration value.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "", "fallthrough":
		return FallThrough, nil
	case "propagate":
		return Propagate, nil
	default:
		return FallThrough, fmt.Errorf("unknown selector error policy %q", s)
	}
}

// Scope decides which part of the tree the selector probe looks at.
type Scope int

const (
	// ScopeDocument probes the whole document the root belongs to.
	ScopeDocument Scope = iota

	// ScopeRoot probes only the current root's descendants.
	ScopeRoot
)

// String returns the configuration name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeDocument:
		return "document"
	case ScopeRoot:
		return "root"
	default:
		return "unknown"
	}
}

// ParseScope parses a configuration value.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "", "document":
		return ScopeDocument, nil
	case "root":
		return ScopeRoot, nil
	default:
		return ScopeDocument, fmt.Errorf("unknown probe scope %q", s)
	}
}

// Probe reports whether selector matches at least one node.
// It returns an error when selector is not valid selector syntax.
type Probe func(selector string) (bool, error)

// Target is the classification of one key.
type Target struct {
	// Key is the classified key.
	Key string

	// Kind is the resolved variant.
	Kind Kind

	// Err is the probe error, if the probe failed. Under FallThrough the
	// key still resolves to Keystroke or Event.
	Err error
}

// Classify resolves key using probe and policy.
// A nil probe behaves as a probe that never matches.
func Classify(key string, probe Probe, policy Policy) Target {
	t := Target{Key: key}

	if probe != nil {
		matched, err := probe(key)
		switch {
		case err != nil:
			t.Err = err
			if policy == Propagate {
				t.Kind = Invalid
				return t
			}
		case matched:
			t.Kind = Selector
			return t
		}
	}

	if IsKeystroke(key) {
		t.Kind = Keystroke
		return t
	}

	t.Kind = Event
	return t
}

// IsKeystroke reports whether key is exactly one code point, the unit a
// key-press event carries in its character code.
func IsKeystroke(key string) bool {
	return key != "" && utf8.RuneCountInString(key) == 1
}
