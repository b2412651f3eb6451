package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/classify"
	"github.com/dshills/attachevents/internal/dom"
	"github.com/dshills/attachevents/internal/dom/htmltree"
)

const page = `<html><body>
<h1>Title</h1>
<ul id="list"><li>one</li><li>two</li></ul>
</body></html>`

func noop(dom.Node, *dom.Event) {}

func TestCheck(t *testing.T) {
	doc, err := htmltree.ParseString(page)
	require.NoError(t, err)

	spec := behavior.Spec{
		"click": behavior.Action(noop),
		"clik":  behavior.Action(noop),
		"#list": behavior.Spec{
			"h1": behavior.Spec{"click": behavior.Action(noop)},
		},
		"li": behavior.Spec{"dblclick": "not a function"},
		"x":  42,
		"?":  behavior.Action(noop),
		"h1": "not a spec",
	}

	findings := Check(spec, doc.Root(), Options{})

	type summary struct {
		kind Kind
		path string
	}
	var got []summary
	for _, f := range findings {
		got = append(got, summary{f.Kind, joinPath(f.Path)})
	}

	assert.Equal(t, []summary{
		{UnmatchedSelectorScope, "#list > h1"},
		{SelectorSyntax, "?"},
		{UnknownEvent, "clik"},
		{NonActionValue, "h1"},
		{NonActionValue, "li > dblclick"},
		{NonActionValue, "x"},
	}, got)

	for _, f := range findings {
		if f.Kind == UnknownEvent {
			assert.Contains(t, f.Suggestions, "click")
			assert.LessOrEqual(t, len(f.Suggestions), 3)
			assert.Contains(t, f.String(), "did you mean")
		}
	}
}

func TestCheck_Clean(t *testing.T) {
	doc, err := htmltree.ParseString(page)
	require.NoError(t, err)

	spec := behavior.Spec{
		"o": func() {},
		"li": behavior.Spec{
			"mouseover": func(*dom.Event) {},
		},
	}
	assert.Empty(t, Check(spec, doc.Root(), Options{}))
	assert.Empty(t, Check(spec, nil, Options{}))
}

func TestCheck_RootScope(t *testing.T) {
	doc, err := htmltree.ParseString(page)
	require.NoError(t, err)

	list, err := doc.QuerySelector("#list")
	require.NoError(t, err)

	// With root scope an h1 outside the list is not a selector at all, so
	// the key is an event name no host fires.
	findings := Check(behavior.Spec{"h1": behavior.Action(noop)}, list, Options{Scope: classify.ScopeRoot})
	require.Len(t, findings, 1)
	assert.Equal(t, UnknownEvent, findings[0].Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown-event", UnknownEvent.String())
	assert.Equal(t, "selector-syntax", SelectorSyntax.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func joinPath(p []string) string {
	return strings.Join(p, " > ")
}
