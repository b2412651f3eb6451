// Command attachevents binds Lua behavior specs to HTML pages and drives
// them from a replay script or an interactive terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/attachevents/internal/app"
	"github.com/dshills/attachevents/internal/catalog"
	"github.com/dshills/attachevents/internal/watch"
)

// Version information (set via ldflags during build).
var version = "dev"

// errFindings makes lint exit non-zero after the findings were printed.
var errFindings = errors.New("lint reported findings")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "attachevents",
		Short: "Bind declarative event behaviors to HTML pages",
		Long: `attachevents loads an HTML page and a Lua behaviors file and binds the
behaviors to the page. Top-level keys of the behaviors table are
selectors (recursing into every match), single characters (key-press
bindings) or event types.

Examples:
  attachevents replay page.html behaviors.lua events.txt
  attachevents run page.html behaviors.lua
  attachevents lint page.html behaviors.lua
  attachevents events mouse`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newReplayCmd(flags),
		newRunCmd(flags),
		newLintCmd(flags),
		newEventsCmd(),
		newConfigCmd(flags),
	)
	return root
}

func newApp(cmd *cobra.Command, flags *rootFlags, page, script string) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath:   flags.configPath,
		LogLevel:     flags.logLevel,
		PagePath:     page,
		ScriptPath:   script,
		ScriptOutput: cmd.OutOrStdout(),
		LogOutput:    cmd.ErrOrStderr(),
	})
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func newReplayCmd(flags *rootFlags) *cobra.Command {
	var stopOnError bool

	cmd := &cobra.Command{
		Use:   "replay <page.html> <behaviors.lua> [events|-]",
		Short: "Bind behaviors and play a scripted event sequence",
		Long: `Bind behaviors and play a scripted event sequence.

The events file has one step per line, "keypress <char> [selector]" or
"<type> [selector]". Without a file, or with "-", steps are read from
standard input.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, args[0], args[1])
			if err != nil {
				return err
			}
			defer a.Shutdown()

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 3 && args[2] != "-" {
				f, err := os.Open(args[2])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			ctx, cancel := signalContext(cmd)
			defer cancel()
			return a.Replay(ctx, in, stopOnError)
		},
	}
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failing step")
	return cmd
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <page.html> <behaviors.lua>",
		Short: "Bind behaviors and interact with the page in the terminal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags, args[0], args[1])
			if err != nil {
				return err
			}
			defer a.Shutdown()

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("creating terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing terminal: %w", err)
			}
			defer screen.Fini()

			ctx, cancel := signalContext(cmd)
			defer cancel()
			return a.RunTerminal(ctx, screen)
		},
	}
}

func newLintCmd(flags *rootFlags) *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "lint <page.html> <behaviors.lua>",
		Short: "Report likely mistakes in a behaviors file",
		Long: `Report likely mistakes in a behaviors file.

With --watch the check reruns whenever the page or the script changes,
until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := lintOnce(cmd, flags, args[0], args[1])
			if !watchFiles {
				return err
			}
			if err != nil && !errors.Is(err, errFindings) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}

			w, err := watch.New(args)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, cancel := signalContext(cmd)
			defer cancel()
			err = w.Run(ctx, func(path string) {
				fmt.Fprintf(cmd.OutOrStdout(), "--- %s changed\n", path)
				if err := lintOnce(cmd, flags, args[0], args[1]); err != nil && !errors.Is(err, errFindings) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "Rerun when the page or script changes")
	return cmd
}

func lintOnce(cmd *cobra.Command, flags *rootFlags, page, script string) error {
	a, err := newApp(cmd, flags, page, script)
	if err != nil {
		return err
	}
	defer a.Shutdown()

	findings, err := a.Lint()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, f := range findings {
		fmt.Fprintf(out, "%s: %s\n", f.Kind, f)
	}
	if len(findings) > 0 {
		return errFindings
	}
	return nil
}

func newEventsCmd() *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "events [query]",
		Short: "List known event types",
		Long: `List known event types. With a query, list the closest matches, best
first, or with --prefix every type starting with the query.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := catalog.Names()
			if len(args) == 1 {
				if prefix {
					names = catalog.WithPrefix(args[0])
				} else {
					names = catalog.Suggest(args[0], 0)
				}
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&prefix, "prefix", false, "Match the query as a prefix")
	return cmd
}

func newConfigCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.LoadConfig(flags.configPath, flags.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
