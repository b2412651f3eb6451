// Package binder wires declarative behavior specs onto a Node Tree.
//
// A behavior spec maps keys to actions. Each key is classified (see package
// classify) and bound accordingly:
//
//	b := binder.New(binder.WithDefaultRoot(doc.Root()))
//	err := b.Bind(behavior.Spec{
//	    "click": onClick,               // event: listener on the root
//	    "o":     onO,                   // keystroke: entry in the root's keymap
//	    "h1":    behavior.Spec{         // selector: recurse into each match
//	        "click": onHeadingClick,
//	    },
//	}, nil)
//
// # Keymaps
//
// Every Bind invocation, including each recursive one, owns a private keymap
// and installs exactly one key-press listener on its root. The listener
// decodes the pressed character from the event's character code and calls
// the matching action with this bound to the root. Keymaps are never shared
// or merged between sibling or nested invocations.
//
// # Errors
//
// Binding is permissive. Values of an unrecognized shape are skipped and
// logged. The only failure Bind reports is a key that is not valid selector
// syntax, and only under the Propagate policy; the default FallThrough
// policy classifies such keys as keystrokes or events instead.
//
// # Re-binding
//
// Binding twice over overlapping roots installs independent, additive
// listeners. There is no de-duplication and no teardown.
package binder
