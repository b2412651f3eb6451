// Package app wires configuration, logging, the page, the behaviors
// script and the binder into one application.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/dshills/attachevents/internal/behavior"
	"github.com/dshills/attachevents/internal/binder"
	"github.com/dshills/attachevents/internal/classify"
	"github.com/dshills/attachevents/internal/config"
	"github.com/dshills/attachevents/internal/dom/htmltree"
	"github.com/dshills/attachevents/internal/lint"
	"github.com/dshills/attachevents/internal/logging"
	"github.com/dshills/attachevents/internal/replay"
	"github.com/dshills/attachevents/internal/script"
	"github.com/dshills/attachevents/internal/terminal"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// PagePath is the HTML page to load.
	PagePath string

	// ScriptPath is the Lua behaviors file. Optional.
	ScriptPath string

	// ScriptOutput receives print output from the script.
	ScriptOutput io.Writer

	// LogOutput receives log records. Defaults to stderr.
	LogOutput io.Writer
}

// Application holds the loaded page and behaviors.
type Application struct {
	opts   Options
	cfg    *config.Config
	logger *slog.Logger

	doc    *htmltree.Document
	engine *script.Engine
	spec   behavior.Spec
	binder *binder.Binder
}

// LoadConfig loads configuration and builds the logger, applying the
// log level override.
func LoadConfig(path, logLevel string, logOutput io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, &InitError{Component: "config", Err: err}
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger, err := logging.NewWriter(logOutput, cfg.Logging)
	if err != nil {
		return nil, nil, &InitError{Component: "logging", Err: err}
	}
	return cfg, logger, nil
}

// New loads configuration, the page and the script. Nothing is bound
// until Bind is called.
func New(opts Options) (*Application, error) {
	cfg, logger, err := LoadConfig(opts.ConfigPath, opts.LogLevel, opts.LogOutput)
	if err != nil {
		return nil, err
	}

	// Every record from one process carries the same run id.
	logger = logger.With(slog.String("run", uuid.NewString()))
	a := &Application{opts: opts, cfg: cfg, logger: logger}

	f, err := os.Open(opts.PagePath)
	if err != nil {
		return nil, &InitError{Component: "page", Err: err}
	}
	defer f.Close()

	a.doc, err = htmltree.Parse(f, htmltree.WithLogger(logger))
	if err != nil {
		return nil, &InitError{Component: "page", Err: err}
	}

	a.binder = binder.New(
		binder.WithDefaultRoot(a.doc.Root()),
		binder.WithLogger(logger),
		binder.FromConfig(cfg.Binder),
	)

	if opts.ScriptPath != "" {
		a.engine = script.New(
			script.WithOutput(opts.ScriptOutput),
			script.WithLogger(logger),
		)
		a.spec, err = a.engine.Load(opts.ScriptPath)
		if err != nil {
			_ = a.engine.Close()
			return nil, &InitError{Component: "script", Err: err}
		}
		logger.Debug("behaviors loaded",
			slog.String("script", opts.ScriptPath),
			slog.Int("entries", a.spec.Len()),
		)
	}

	return a, nil
}

// Bind installs the script's behaviors on the document root.
func (a *Application) Bind() error {
	if a.spec == nil {
		return ErrNoScript
	}
	if err := a.binder.Bind(a.spec, nil); err != nil {
		return err
	}
	st := a.binder.Stats()
	a.logger.Info("behaviors bound",
		slog.Uint64("listeners", st.ListenersAttached),
		slog.Uint64("selector_matches", st.SelectorMatches),
		slog.Uint64("skipped", st.SkippedValues),
	)
	return nil
}

// Lint checks the script's behaviors against the page without binding.
func (a *Application) Lint() ([]lint.Finding, error) {
	if a.spec == nil {
		return nil, ErrNoScript
	}
	scope, _ := classify.ParseScope(a.cfg.Binder.ProbeScope)
	return lint.Check(a.spec, a.doc.Root(), lint.Options{Scope: scope}), nil
}

// Replay binds the behaviors and plays the steps read from r.
func (a *Application) Replay(ctx context.Context, r io.Reader, stopOnError bool) error {
	steps, err := replay.Parse(r)
	if err != nil {
		return err
	}
	if err := a.Bind(); err != nil {
		return err
	}
	p := replay.NewPlayer(a.doc, a.logger)
	p.StopOnError = stopOnError
	return p.Play(ctx, steps)
}

// RunTerminal binds the behaviors and hosts the page on screen until the
// user quits or ctx is done. The screen must be initialized.
func (a *Application) RunTerminal(ctx context.Context, screen tcell.Screen) error {
	if err := a.Bind(); err != nil {
		return err
	}
	h, err := terminal.New(screen, a.doc,
		terminal.WithFocusable(a.cfg.Terminal.Focusable),
		terminal.WithStatusLine(a.cfg.Terminal.StatusLine),
		terminal.WithStatus(a.engine.LastOutput),
		terminal.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	return h.Run(ctx)
}

// Shutdown releases the script state.
func (a *Application) Shutdown() {
	if a.engine != nil {
		_ = a.engine.Close()
	}
}

// Config returns the effective configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Logger returns the application logger.
func (a *Application) Logger() *slog.Logger { return a.logger }

// Document returns the loaded page.
func (a *Application) Document() *htmltree.Document { return a.doc }

// Binder returns the configured binder.
func (a *Application) Binder() *binder.Binder { return a.binder }

// Engine returns the script engine, or nil without a script.
func (a *Application) Engine() *script.Engine { return a.engine }
