package script

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/dom"
)

// DefaultActionTimeout bounds a single action call.
const DefaultActionTimeout = 5 * time.Second

// Engine owns a sandboxed Lua state and the actions loaded from it.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool

	out     *outputWriter
	logger  *slog.Logger
	timeout time.Duration

	// nodes caches one userdata per node so identity holds in Lua.
	nodes map[dom.Node]*lua.LUserData

	failures atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets where print writes. The default discards output.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.out.w = w
		}
	}
}

// WithLogger sets the logger used for action failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithActionTimeout bounds each action call. Zero disables the bound.
func WithActionTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// New creates an engine with a fresh sandboxed state.
func New(opts ...Option) *Engine {
	e := &Engine{
		out:     &outputWriter{w: io.Discard},
		logger:  slog.New(slog.DiscardHandler),
		timeout: DefaultActionTimeout,
		nodes:   make(map[dom.Node]*lua.LUserData),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSandbox(e.L, e.out)
	e.registerNodeType()
	return e
}

// Load evaluates the Lua file at path and returns its behaviors.
func (e *Engine) Load(path string) (behavior.Spec, error) {
	return e.load(path, func() (*lua.LFunction, error) {
		return e.L.LoadFile(path)
	})
}

// LoadString evaluates src and returns its behaviors.
func (e *Engine) LoadString(src string) (behavior.Spec, error) {
	return e.load("<string>", func() (*lua.LFunction, error) {
		return e.L.LoadString(src)
	})
}

func (e *Engine) load(name string, compile func() (*lua.LFunction, error)) (behavior.Spec, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, ErrStateClosed
	}

	fn, err := compile()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}
	ret := e.L.Get(-1)
	e.L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		table, ok = e.L.GetGlobal("behaviors").(*lua.LTable)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoBehaviors)
	}
	return e.toSpec(table, make(map[*lua.LTable]bool)), nil
}

// LastOutput returns the most recent line written by print.
func (e *Engine) LastOutput() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.out.last
}

// Failures returns the number of action calls that raised an error.
func (e *Engine) Failures() uint64 {
	return e.failures.Load()
}

// Close releases the Lua state. Actions invoked afterwards do nothing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	e.nodes = nil
	return nil
}

// action wraps fn as a behavior action. Errors raised by fn are logged
// and counted, never propagated to the dispatching host.
func (e *Engine) action(fn *lua.LFunction) behavior.Action {
	return func(this dom.Node, ev *dom.Event) {
		if err := e.call(fn, this, ev); err != nil {
			e.failures.Add(1)
			e.logger.Warn("lua action failed",
				slog.String("event", ev.Type),
				slog.Any("error", err),
			)
		}
	}
}

func (e *Engine) call(fn *lua.LFunction, this dom.Node, ev *dom.Event) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrStateClosed
	}

	if e.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		e.L.SetContext(ctx)
		defer e.L.RemoveContext()
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	return e.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true},
		e.nodeValue(this),
		e.eventTable(ev),
	)
}
