// Package dom defines the Node Tree contract consumed by the binder.
//
// The binder never owns nodes. It needs a tree that can answer selector
// queries, register listeners against (node, event type) pairs, and deliver
// key-press events that carry a character code. Any host that satisfies
// Node can be bound; htmltree is the implementation shipped with this module.
//
// # Events
//
// Event is a plain struct passed by pointer to every listener of a single
// dispatch. Hosts fill Target and CurrentTarget as the event travels:
//
//	ev := dom.NewKeyPress('o')
//	doc.Dispatch(doc.Root(), ev)
//
// Key-press events carry the pressed character in Which, mirroring the
// legacy DOM KeyboardEvent.which character code.
package dom
