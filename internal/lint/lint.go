// Package lint inspects a behavior spec against a tree without binding it.
//
// Check classifies keys exactly as the binder would and reports entries
// that are likely mistakes: event names no host ever fires, selectors that
// exist in the page but not where the spec looks for them, values the
// binder would skip, and keys that are malformed selectors. Findings are
// advisory; the binder accepts every spec Check complains about.
package lint

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/catalog"
	"github.com/dshills/attachevents/internal/classify"
	"github.com/dshills/attachevents/internal/dom"
)

// Kind identifies the class of a finding.
type Kind int

const (
	// UnknownEvent is an event key missing from the catalog.
	UnknownEvent Kind = iota
	// UnmatchedSelectorScope is a selector present in the document that
	// matches nothing under the root it is nested in.
	UnmatchedSelectorScope
	// NonActionValue is a value the binder skips or coerces.
	NonActionValue
	// SelectorSyntax is a key the selector engine rejected.
	SelectorSyntax
)

func (k Kind) String() string {
	switch k {
	case UnknownEvent:
		return "unknown-event"
	case UnmatchedSelectorScope:
		return "unmatched-selector"
	case NonActionValue:
		return "non-action-value"
	case SelectorSyntax:
		return "selector-syntax"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Finding is a single lint result.
type Finding struct {
	Kind Kind
	// Path is the chain of keys from the top-level spec to Key.
	Path []string
	Key  string
	// Message is a human readable explanation.
	Message string
	// Suggestions holds catalog names close to an unknown event.
	Suggestions []string
}

func (f Finding) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(f.Path, " > "))
	sb.WriteString(": ")
	sb.WriteString(f.Message)
	if len(f.Suggestions) > 0 {
		sb.WriteString(" (did you mean ")
		sb.WriteString(strings.Join(f.Suggestions, ", "))
		sb.WriteString("?)")
	}
	return sb.String()
}

// Options configures Check.
type Options struct {
	// Scope must match the binder's probe scope for the results to agree.
	Scope classify.Scope
	// Suggestions caps suggestions per unknown event. Zero means three.
	Suggestions int
}

// Check walks spec from root and returns its findings in key order.
// Identical findings reached through several matches are reported once.
func Check(spec behavior.Spec, root dom.Node, opts Options) []Finding {
	if opts.Suggestions <= 0 {
		opts.Suggestions = 3
	}
	c := &checker{opts: opts, seen: make(map[string]bool)}
	if root != nil {
		c.walk(spec, root, nil)
	}
	return c.findings
}

type checker struct {
	opts     Options
	findings []Finding
	seen     map[string]bool
}

func (c *checker) walk(spec behavior.Spec, root dom.Node, parent []string) {
	probe := c.probe(root)

	for _, key := range spec.Keys() {
		value := spec[key]
		path := append(slices.Clone(parent), key)
		target := classify.Classify(key, probe, classify.FallThrough)

		if target.Err != nil {
			c.add(Finding{
				Kind:    SelectorSyntax,
				Path:    path,
				Key:     key,
				Message: fmt.Sprintf("not a valid selector, bound as %s: %v", target.Kind, target.Err),
			})
			continue
		}

		switch target.Kind {
		case classify.Selector:
			nested, ok := behavior.AsSpec(value)
			if !ok {
				c.add(Finding{
					Kind:    NonActionValue,
					Path:    path,
					Key:     key,
					Message: fmt.Sprintf("selector value is %T, not a nested spec", value),
				})
			}
			matches, err := root.QuerySelectorAll(key)
			if err != nil {
				continue
			}
			if len(matches) == 0 {
				c.add(Finding{
					Kind:    UnmatchedSelectorScope,
					Path:    path,
					Key:     key,
					Message: "selector exists in the document but matches nothing here",
				})
			}
			for _, m := range matches {
				c.walk(nested, m, path)
			}

		case classify.Keystroke, classify.Event:
			if _, ok := behavior.AsAction(value); !ok {
				c.add(Finding{
					Kind:    NonActionValue,
					Path:    path,
					Key:     key,
					Message: fmt.Sprintf("%s value is %T, not an action", target.Kind, value),
				})
				continue
			}
			if target.Kind == classify.Event && !catalog.Contains(key) {
				c.add(Finding{
					Kind:        UnknownEvent,
					Path:        path,
					Key:         key,
					Message:     fmt.Sprintf("%q is not a known event type", key),
					Suggestions: catalog.Suggest(key, c.opts.Suggestions),
				})
			}
		}
	}
}

func (c *checker) add(f Finding) {
	id := f.Kind.String() + "\x00" + strings.Join(f.Path, "\x00")
	if c.seen[id] {
		return
	}
	c.seen[id] = true
	c.findings = append(c.findings, f)
}

func (c *checker) probe(root dom.Node) classify.Probe {
	scope := root
	if c.opts.Scope == classify.ScopeDocument {
		if doc := root.OwnerDocument(); doc != nil {
			scope = doc
		}
	}
	return func(selector string) (bool, error) {
		n, err := scope.QuerySelector(selector)
		if err != nil {
			return false, err
		}
		return n != nil, nil
	}
}
