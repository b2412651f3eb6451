// Package htmltree implements the dom Node Tree over parsed HTML.
//
// Documents are parsed with golang.org/x/net/html and queried with
// cascadia CSS selectors. Each html.Node is wrapped exactly once, so node
// identity is stable across queries and listeners registered through one
// handle are visible through every other handle to the same node.
//
// Dispatch is synchronous: the target's listeners run first, then each
// ancestor's while the event bubbles. A panicking listener is isolated and
// reported to the document's PanicHandler; the remaining listeners still run.
package htmltree
