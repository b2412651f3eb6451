package dom

// Listener is a callback registered for one event type on one node.
type Listener func(ev *Event)

// Node is an opaque handle into a Node Tree.
type Node interface {
	// QuerySelector returns the first descendant matching selector, or nil.
	// A selector the tree cannot parse yields an error wrapping ErrSelectorSyntax.
	QuerySelector(selector string) (Node, error)

	// QuerySelectorAll returns every descendant matching selector in
	// document order. The node itself is never included.
	QuerySelectorAll(selector string) ([]Node, error)

	// AddEventListener registers listener for eventType on this node.
	// Registrations are additive; the same listener may be added twice.
	AddEventListener(eventType string, listener Listener)

	// OwnerDocument returns the top of the tree this node belongs to.
	// A document returns itself.
	OwnerDocument() Node
}

// Element is the richer contract offered by trees that expose markup.
// Script bridges and hosts type-assert to it when they need content.
type Element interface {
	Node

	// TagName returns the lower-case tag name, or "#document" for a document.
	TagName() string

	// ID returns the id attribute, or "".
	ID() string

	// TextContent returns the concatenated text of the node's subtree.
	TextContent() string

	// SetTextContent replaces all children with a single text node.
	SetTextContent(text string)

	// Attribute returns the named attribute and whether it is present.
	Attribute(name string) (string, bool)

	// SetAttribute sets or replaces the named attribute.
	SetAttribute(name, value string)

	// Parent returns the parent node, or nil at the top of the tree.
	Parent() Node
}
