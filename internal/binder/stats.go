package binder

import "sync/atomic"

// Stats contains cumulative binding statistics.
type Stats struct {
	// Invocations counts bind calls, including recursive ones.
	Invocations uint64

	// SelectorKeys counts keys classified as selectors.
	SelectorKeys uint64

	// SelectorMatches counts nodes recursed into.
	SelectorMatches uint64

	// KeystrokeKeys counts keys recorded in a keymap.
	KeystrokeKeys uint64

	// EventKeys counts keys attached as event listeners.
	EventKeys uint64

	// ListenersAttached counts every listener installed, key-press included.
	ListenersAttached uint64

	// SkippedValues counts entries whose value had an unusable shape.
	SkippedValues uint64

	// SelectorErrors counts failed selector probes, under either policy.
	SelectorErrors uint64
}

type counters struct {
	invocations     atomic.Uint64
	selectorKeys    atomic.Uint64
	selectorMatches atomic.Uint64
	keystrokeKeys   atomic.Uint64
	eventKeys       atomic.Uint64
	listeners       atomic.Uint64
	skipped         atomic.Uint64
	selectorErrors  atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Invocations:       c.invocations.Load(),
		SelectorKeys:      c.selectorKeys.Load(),
		SelectorMatches:   c.selectorMatches.Load(),
		KeystrokeKeys:     c.keystrokeKeys.Load(),
		EventKeys:         c.eventKeys.Load(),
		ListenersAttached: c.listeners.Load(),
		SkippedValues:     c.skipped.Load(),
		SelectorErrors:    c.selectorErrors.Load(),
	}
}

func (c *counters) reset() {
	c.invocations.Store(0)
	c.selectorKeys.Store(0)
	c.selectorMatches.Store(0)
	c.keystrokeKeys.Store(0)
	c.eventKeys.Store(0)
	c.listeners.Store(0)
	c.skipped.Store(0)
	c.selectorErrors.Store(0)
}
