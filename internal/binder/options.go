package binder

import (
	"log/slog"

	"github.com/dshills/attachevents/internal/classify"
	"github.com/dshills/attachevents/internal/config"
	"github.com/dshills/attachevents/internal/dom"
)

// Option configures a Binder.
type Option func(*Binder)

// WithDefaultRoot sets the root used when Bind is called with a nil root.
// Hosts supply their tree's well-known top node here.
func WithDefaultRoot(root dom.Node) Option {
	return func(b *Binder) {
		b.defaultRoot = root
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithSelectorErrors sets how keys that are not valid selector syntax are
// treated.
func WithSelectorErrors(p classify.Policy) Option {
	return func(b *Binder) {
		b.policy = p
	}
}

// WithProbeScope sets which part of the tree the selector probe examines.
func WithProbeScope(s classify.Scope) Option {
	return func(b *Binder) {
		b.scope = s
	}
}

// WithSkipEmptyKeymap omits the key-press listener when an invocation
// collected no keystrokes.
func WithSkipEmptyKeymap(skip bool) Option {
	return func(b *Binder) {
		b.skipEmptyKeymap = skip
	}
}

// FromConfig applies a binder configuration section. Unparseable values
// keep the defaults; config.Validate reports them.
func FromConfig(cfg config.BinderConfig) Option {
	return func(b *Binder) {
		if p, err := classify.ParsePolicy(cfg.SelectorErrors); err == nil {
			b.policy = p
		}
		if s, err := classify.ParseScope(cfg.ProbeScope); err == nil {
			b.scope = s
		}
		b.skipEmptyKeymap = cfg.SkipEmptyKeymap
	}
}
