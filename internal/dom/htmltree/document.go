package htmltree

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dshills/attachevents/internal/dom"
)

// Document is a parsed HTML tree with listener registration and dispatch.
// Listener registration is safe for concurrent use; content mutation is not.
type Document struct {
	root *html.Node

	mu        sync.Mutex
	nodes     map[*html.Node]*Element
	selectors map[string]cascadia.Selector

	exec   *executor
	logger *slog.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for panic reports.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPanicHandler replaces the default logging panic handler.
func WithPanicHandler(h PanicHandler) Option {
	return func(d *Document) {
		d.exec = newExecutor(h)
	}
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := &Document{
		root:      root,
		nodes:     make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.exec == nil {
		d.exec = newExecutor(logPanics(d.logger))
	}

	return d, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Root returns the document node. It is the default binding root.
func (d *Document) Root() *Element {
	return d.wrap(d.root)
}

// Body returns the body element, or nil if the document has none.
func (d *Document) Body() *Element {
	var body *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			body = n
			return false
		}
		return true
	})
	if body == nil {
		return nil
	}
	return d.wrap(body)
}

// Elements returns every element in document order.
func (d *Document) Elements() []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			out = append(out, d.wrap(n))
		}
		return true
	})
	return out
}

// QuerySelector queries the whole document.
func (d *Document) QuerySelector(selector string) (dom.Node, error) {
	return d.Root().QuerySelector(selector)
}

// QuerySelectorAll queries the whole document.
func (d *Document) QuerySelectorAll(selector string) ([]dom.Node, error) {
	return d.Root().QuerySelectorAll(selector)
}

// Dispatch delivers ev to target and, if the event bubbles, its ancestors.
// Listeners registered during dispatch are not called for this event.
func (d *Document) Dispatch(target dom.Node, ev *dom.Event) error {
	el, ok := target.(*Element)
	if !ok || el.doc != d {
		return ErrForeignNode
	}

	path := []*Element{el}
	if ev.Bubbles {
		for p := el.n.Parent; p != nil; p = p.Parent {
			path = append(path, d.wrap(p))
		}
	}

	ev.Target = el
	for _, node := range path {
		ev.CurrentTarget = node
		for _, l := range d.listenersFor(node, ev.Type) {
			d.exec.run(ev, l)
		}
		if ev.PropagationStopped() {
			break
		}
	}
	ev.CurrentTarget = nil

	return nil
}

// ListenerCount returns how many listeners node has for eventType.
func (d *Document) ListenerCount(node dom.Node, eventType string) int {
	el, ok := node.(*Element)
	if !ok || el.doc != d {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(el.listeners[eventType])
}

// wrap returns the unique Element for n.
func (d *Document) wrap(n *html.Node) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.nodes[n]; ok {
		return el
	}
	el := &Element{doc: d, n: n}
	d.nodes[n] = el
	return el
}

// compile returns a cached compiled selector.
func (d *Document) compile(selector string) (cascadia.Selector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, &SelectorSyntaxError{Selector: selector, Err: err}
	}
	d.selectors[selector] = sel
	return sel, nil
}

func (d *Document) addListener(el *Element, eventType string, l dom.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el.listeners == nil {
		el.listeners = make(map[string][]dom.Listener)
	}
	el.listeners[eventType] = append(el.listeners[eventType], l)
}

// listenersFor returns a snapshot of el's listeners for eventType.
func (d *Document) listenersFor(el *Element, eventType string) []dom.Listener {
	d.mu.Lock()
	defer d.mu.Unlock()

	ls := el.listeners[eventType]
	if len(ls) == 0 {
		return nil
	}
	out := make([]dom.Listener, len(ls))
	copy(out, ls)
	return out
}

// walk visits n and its descendants in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
