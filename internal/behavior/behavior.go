// Package behavior defines the BehaviorSpec data model: a nested mapping
// from target keys to actions or further specs.
//
//	spec := behavior.Spec{
//	    "click": behavior.Action(onClick),
//	    "o":     func(ev *dom.Event) { ... },
//	    "h1": behavior.Spec{
//	        "click": onHeadingClick,
//	    },
//	}
//
// Values are deliberately loosely typed. The binder is permissive: shapes it
// does not recognize are skipped rather than rejected.
package behavior

import (
	"sort"

	"github.com/dshills/attachevents/internal/dom"
)

// Action is invoked with this bound to the node the listener was installed
// on and the triggering event.
type Action func(this dom.Node, ev *dom.Event)

// Spec maps target keys to actions or nested specs.
type Spec map[string]any

// Keys returns the spec's keys in the stable order used for binding.
func (s Spec) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of entries, counting nested specs recursively.
func (s Spec) Len() int {
	n := 0
	for _, v := range s {
		n++
		if nested, ok := AsSpec(v); ok {
			n += nested.Len()
		}
	}
	return n
}

// AsAction coerces v to an Action. The accepted shapes are Action,
// func(dom.Node, *dom.Event), func(*dom.Event), dom.Listener and func().
func AsAction(v any) (Action, bool) {
	switch fn := v.(type) {
	case Action:
		return fn, fn != nil
	case func(dom.Node, *dom.Event):
		return Action(fn), fn != nil
	case func(*dom.Event):
		if fn == nil {
			return nil, false
		}
		return func(_ dom.Node, ev *dom.Event) { fn(ev) }, true
	case dom.Listener:
		if fn == nil {
			return nil, false
		}
		return func(_ dom.Node, ev *dom.Event) { fn(ev) }, true
	case func():
		if fn == nil {
			return nil, false
		}
		return func(dom.Node, *dom.Event) { fn() }, true
	default:
		return nil, false
	}
}

// AsSpec coerces v to a Spec. Spec and map[string]any are accepted.
func AsSpec(v any) (Spec, bool) {
	switch m := v.(type) {
	case Spec:
		return m, true
	case map[string]any:
		return Spec(m), true
	default:
		return nil, false
	}
}
