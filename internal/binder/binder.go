package binder

import (
	"fmt"
	"log/slog"

	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/classify"
	"github.com/dshills/attachevents/internal/dom"
)

// Binder installs listeners described by behavior specs.
// A Binder holds no references to bound nodes; only its counters persist.
type Binder struct {
	defaultRoot     dom.Node
	logger          *slog.Logger
	policy          classify.Policy
	scope           classify.Scope
	skipEmptyKeymap bool

	stats counters
}

// New creates a Binder with the given options.
func New(opts ...Option) *Binder {
	b := &Binder{
		logger: slog.New(slog.DiscardHandler),
		policy: classify.FallThrough,
		scope:  classify.ScopeDocument,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Bind binds spec onto root, or onto the default root when root is nil.
func (b *Binder) Bind(spec behavior.Spec, root dom.Node) error {
	if root == nil {
		root = b.defaultRoot
	}
	if root == nil {
		return ErrNoRoot
	}
	return b.bind(spec, root, 0)
}

// Bind binds spec onto root with a default-configured Binder.
func Bind(spec behavior.Spec, root dom.Node) error {
	return New().Bind(spec, root)
}

// Stats returns cumulative statistics.
func (b *Binder) Stats() Stats {
	return b.stats.snapshot()
}

// ResetStats resets all statistics to zero.
func (b *Binder) ResetStats() {
	b.stats.reset()
}

func (b *Binder) bind(spec behavior.Spec, root dom.Node, depth int) error {
	b.stats.invocations.Add(1)

	log := b.logger.With(slog.Int("depth", depth), slog.String("root", describe(root)))
	probe := b.probeFor(root)
	keys := make(keymap)

	for _, key := range spec.Keys() {
		value := spec[key]
		target := classify.Classify(key, probe, b.policy)
		if target.Err != nil {
			b.stats.selectorErrors.Add(1)
		}
		log.Debug("classified key",
			slog.String("key", key),
			slog.String("kind", target.Kind.String()),
		)

		switch target.Kind {
		case classify.Selector:
			b.stats.selectorKeys.Add(1)
			if err := b.bindSelector(key, value, root, depth, log); err != nil {
				return err
			}

		case classify.Keystroke:
			action, ok := behavior.AsAction(value)
			if !ok {
				b.skip(key, value, log)
				continue
			}
			b.stats.keystrokeKeys.Add(1)
			keys[key] = action

		case classify.Event:
			action, ok := behavior.AsAction(value)
			if !ok {
				b.skip(key, value, log)
				continue
			}
			b.stats.eventKeys.Add(1)
			root.AddEventListener(key, bound(root, action))
			b.stats.listeners.Add(1)

		case classify.Invalid:
			log.Warn("invalid selector key", slog.String("key", key), slog.Any("error", target.Err))
			return &SelectorError{Key: key, Err: target.Err}
		}
	}

	if len(keys) == 0 && b.skipEmptyKeymap {
		return nil
	}
	root.AddEventListener(dom.TypeKeyPress, keys.listener(root))
	b.stats.listeners.Add(1)

	return nil
}

// bindSelector recurses into every match of key under root.
func (b *Binder) bindSelector(key string, value any, root dom.Node, depth int, log *slog.Logger) error {
	matches, err := root.QuerySelectorAll(key)
	if err != nil {
		// The probe accepted the selector, so only a tree that disagrees
		// with itself gets here.
		b.stats.selectorErrors.Add(1)
		if b.policy == classify.Propagate {
			return &SelectorError{Key: key, Err: err}
		}
		log.Warn("selector query failed", slog.String("key", key), slog.Any("error", err))
		return nil
	}

	nested, ok := behavior.AsSpec(value)
	if !ok {
		log.Warn("selector value is not a spec; binding an empty spec",
			slog.String("key", key),
			slog.String("type", fmt.Sprintf("%T", value)),
		)
		nested = behavior.Spec{}
	}

	if len(matches) == 0 {
		log.Debug("selector matched nothing under root", slog.String("key", key))
	}
	b.stats.selectorMatches.Add(uint64(len(matches)))

	for _, m := range matches {
		if err := b.bind(nested, m, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// probeFor returns the selector probe for root according to the scope.
func (b *Binder) probeFor(root dom.Node) classify.Probe {
	scope := root
	if b.scope == classify.ScopeDocument {
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

func (b *Binder) skip(key string, value any, log *slog.Logger) {
	b.stats.skipped.Add(1)
	log.Warn("skipping value that is not an action",
		slog.String("key", key),
		slog.String("type", fmt.Sprintf("%T", value)),
	)
}

// bound adapts action to a listener with this bound to root.
func bound(root dom.Node, action behavior.Action) dom.Listener {
	return func(ev *dom.Event) {
		action(root, ev)
	}
}

func describe(n dom.Node) string {
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", n)
}
