package htmltree

import (
	"log/slog"
	"runtime/debug"

	"github.com/dshills/attachevents/internal/dom"
)

// PanicHandler is called when a listener panics during dispatch.
type PanicHandler func(err *PanicError)

// executor runs listeners with panic recovery.
type executor struct {
	panicHandler PanicHandler
}

func newExecutor(h PanicHandler) *executor {
	return &executor{panicHandler: h}
}

// run invokes l with ev and reports whether it panicked.
func (e *executor) run(ev *dom.Event, l dom.Listener) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		panicked = true

		if e.panicHandler == nil {
			return
		}
		perr := &PanicError{EventType: ev.Type, Value: r, Stack: debug.Stack()}

		// A panicking handler must not take the dispatch down with it.
		func() {
			defer func() { _ = recover() }()
			e.panicHandler(perr)
		}()
	}()

	l(ev)
	return false
}

// logPanics returns a PanicHandler that reports to logger.
func logPanics(logger *slog.Logger) PanicHandler {
	return func(err *PanicError) {
		logger.Error("listener panicked",
			slog.String("event", err.EventType),
			slog.Any("value", err.Value),
			slog.String("stack", string(err.Stack)),
		)
	}
}
