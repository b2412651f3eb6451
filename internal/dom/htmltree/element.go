package htmltree

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/attachevents/internal/dom"
)

// Element is a handle to a node of a Document. The document node itself is
// an Element too, with TagName "#document".
type Element struct {
	doc *Document
	n   *html.Node

	// guarded by doc.mu
	listeners map[string][]dom.Listener
}

var _ dom.Element = (*Element)(nil)

// Document returns the document this element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// QuerySelector returns the first descendant matching selector, or nil.
func (e *Element) QuerySelector(selector string) (dom.Node, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil, err
	}

	var found *html.Node
	for c := e.n.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if sel(n) {
				found = n
				return false
			}
			return true
		})
	}
	if found == nil {
		return nil, nil
	}
	return e.doc.wrap(found), nil
}

// QuerySelectorAll returns every descendant matching selector.
func (e *Element) QuerySelectorAll(selector string) ([]dom.Node, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil, err
	}

	var out []dom.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if sel(n) {
				out = append(out, e.doc.wrap(n))
			}
			return true
		})
	}
	return out, nil
}

// AddEventListener registers listener for eventType on this element.
func (e *Element) AddEventListener(eventType string, listener dom.Listener) {
	if listener == nil {
		return
	}
	e.doc.addListener(e, eventType, listener)
}

// OwnerDocument returns the document node.
func (e *Element) OwnerDocument() dom.Node {
	return e.doc.Root()
}

// TagName returns the lower-case tag name.
func (e *Element) TagName() string {
	if e.n.Type == html.DocumentNode {
		return "#document"
	}
	return e.n.Data
}

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.Attribute("id")
	return id
}

// TextContent returns the text of the element's subtree.
func (e *Element) TextContent() string {
	var sb strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// SetTextContent replaces the element's children with a single text node.
func (e *Element) SetTextContent(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// Attribute returns the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttribute sets or replaces the named attribute.
func (e *Element) SetAttribute(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// Parent returns the parent node, or nil for the document.
func (e *Element) Parent() dom.Node {
	if e.n.Parent == nil {
		return nil
	}
	return e.doc.wrap(e.n.Parent)
}

// String returns a short description such as "h1#title".
func (e *Element) String() string {
	s := e.TagName()
	if id := e.ID(); id != "" {
		s += "#" + id
	}
	return s
}
