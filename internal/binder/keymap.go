package binder

import (
	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/dom"
)

// keymap maps a single character to its action for one bind invocation.
type keymap map[string]behavior.Action

// listener returns the key-press listener for root.
func (k keymap) listener(root dom.Node) dom.Listener {
	return func(ev *dom.Event) {
		if action, ok := k[ev.Char()]; ok {
			action(root, ev)
		}
	}
}
