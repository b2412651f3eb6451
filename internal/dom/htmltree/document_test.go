package htmltree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/attachevents/internal/dom"
)

const page = `<!DOCTYPE html>
<html><body>
<h1 id="title">Hello</h1>
<ul id="list">
  <li class="item">one</li>
  <li class="item">two <b>bold</b></li>
</ul>
<p>para</p>
</body></html>`

func mustParse(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := ParseString(src, opts...)
	require.NoError(t, err)
	return doc
}

func TestQuerySelectorAll(t *testing.T) {
	doc := mustParse(t, page)

	items, err := doc.QuerySelectorAll("li.item")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].(*Element).TextContent())
	assert.Equal(t, "two bold", items[1].(*Element).TextContent())

	none, err := doc.QuerySelectorAll("table")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuerySelectorAllExcludesSelf(t *testing.T) {
	doc := mustParse(t, page)

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)
	require.NotNil(t, list)

	self, err := list.QuerySelectorAll("ul")
	require.NoError(t, err)
	assert.Empty(t, self)

	got, err := list.QuerySelectorAll("b")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQuerySelectorScopedToSubtree(t *testing.T) {
	doc := mustParse(t, page)

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)

	h1, err := list.QuerySelector("h1")
	require.NoError(t, err)
	assert.Nil(t, h1)
}

func TestNodeIdentityIsStable(t *testing.T) {
	doc := mustParse(t, page)

	a, err := doc.QuerySelector("h1")
	require.NoError(t, err)
	b, err := doc.QuerySelector("#title")
	require.NoError(t, err)

	assert.Same(t, a.(*Element), b.(*Element))
}

func TestSelectorSyntaxError(t *testing.T) {
	doc := mustParse(t, page)

	_, err := doc.QuerySelectorAll("?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dom.ErrSelectorSyntax))

	var serr *SelectorSyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "?", serr.Selector)
}

func TestDispatchBubbles(t *testing.T) {
	doc := mustParse(t, page)
	b, err := doc.QuerySelector("b")
	require.NoError(t, err)
	li, err := doc.QuerySelector("li:nth-child(2)")
	require.NoError(t, err)

	var order []string
	b.AddEventListener("click", func(ev *dom.Event) {
		order = append(order, "b")
		assert.Same(t, b, ev.CurrentTarget)
	})
	li.AddEventListener("click", func(ev *dom.Event) {
		order = append(order, "li")
		assert.Same(t, b, ev.Target)
	})
	doc.Root().AddEventListener("click", func(*dom.Event) { order = append(order, "document") })

	require.NoError(t, doc.Dispatch(b, dom.NewEvent("click")))
	assert.Equal(t, []string{"b", "li", "document"}, order)
}

func TestDispatchNonBubbling(t *testing.T) {
	doc := mustParse(t, page)
	h1, err := doc.QuerySelector("h1")
	require.NoError(t, err)

	var calls int
	doc.Root().AddEventListener("focus", func(*dom.Event) { calls++ })
	h1.AddEventListener("focus", func(*dom.Event) { calls++ })

	require.NoError(t, doc.Dispatch(h1, dom.NewEvent("focus")))
	assert.Equal(t, 1, calls)
}

func TestDispatchStopPropagation(t *testing.T) {
	doc := mustParse(t, page)
	h1, err := doc.QuerySelector("h1")
	require.NoError(t, err)

	var rootCalls, h1Calls int
	h1.AddEventListener("click", func(ev *dom.Event) {
		h1Calls++
		ev.StopPropagation()
	})
	h1.AddEventListener("click", func(*dom.Event) { h1Calls++ })
	doc.Root().AddEventListener("click", func(*dom.Event) { rootCalls++ })

	require.NoError(t, doc.Dispatch(h1, dom.NewEvent("click")))
	assert.Equal(t, 2, h1Calls)
	assert.Equal(t, 0, rootCalls)
}

func TestDispatchIsolatesPanics(t *testing.T) {
	var reported []*PanicError
	doc := mustParse(t, page, WithPanicHandler(func(err *PanicError) {
		reported = append(reported, err)
	}))

	var ran bool
	doc.Root().AddEventListener("click", func(*dom.Event) { panic("boom") })
	doc.Root().AddEventListener("click", func(*dom.Event) { ran = true })

	require.NoError(t, doc.Dispatch(doc.Root(), dom.NewEvent("click")))
	assert.True(t, ran)
	require.Len(t, reported, 1)
	assert.Equal(t, "boom", reported[0].Value)
	assert.Equal(t, "click", reported[0].EventType)
	assert.NotEmpty(t, reported[0].Stack)
}

func TestDispatchSnapshotsListeners(t *testing.T) {
	doc := mustParse(t, page)
	root := doc.Root()

	var calls int
	root.AddEventListener("click", func(*dom.Event) {
		calls++
		root.AddEventListener("click", func(*dom.Event) { calls++ })
	})

	require.NoError(t, doc.Dispatch(root, dom.NewEvent("click")))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, doc.ListenerCount(root, "click"))
}

func TestDispatchForeignNode(t *testing.T) {
	a := mustParse(t, page)
	b := mustParse(t, page)

	err := a.Dispatch(b.Root(), dom.NewEvent("click"))
	assert.ErrorIs(t, err, ErrForeignNode)
	assert.Equal(t, 0, a.ListenerCount(b.Root(), "click"))
}

func TestElementContent(t *testing.T) {
	doc := mustParse(t, page)
	node, err := doc.QuerySelector("#title")
	require.NoError(t, err)
	h1 := node.(*Element)

	assert.Equal(t, "h1", h1.TagName())
	assert.Equal(t, "title", h1.ID())
	assert.Equal(t, "h1#title", h1.String())
	assert.Equal(t, "#document", doc.Root().TagName())

	h1.SetTextContent("changed")
	assert.Equal(t, "changed", h1.TextContent())

	h1.SetAttribute("data-state", "on")
	v, ok := h1.Attribute("data-state")
	assert.True(t, ok)
	assert.Equal(t, "on", v)

	h1.SetAttribute("id", "renamed")
	assert.Equal(t, "renamed", h1.ID())

	_, ok = h1.Attribute("missing")
	assert.False(t, ok)

	assert.Equal(t, "body", h1.Parent().(*Element).TagName())
	assert.Nil(t, doc.Root().Parent())
	assert.Same(t, doc.Root(), h1.OwnerDocument())
}

func TestBodyAndElements(t *testing.T) {
	doc := mustParse(t, page)

	require.NotNil(t, doc.Body())
	assert.Equal(t, "body", doc.Body().TagName())

	var tags []string
	for _, el := range doc.Elements() {
		tags = append(tags, el.TagName())
	}
	assert.Equal(t, []string{"html", "head", "body", "h1", "ul", "li", "li", "b", "p"}, tags)
}
