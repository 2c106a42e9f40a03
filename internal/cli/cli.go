// Package cli is the calc command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"calc/app"
	"calc/calc/engine"
	"calc/calc/keypad"
	"calc/calc/tui"
	"calc/hal"
	"calc/internal/buildinfo"
	"calc/internal/config"
	"calc/internal/logging"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ErrNotTerminal = errors.New("the terminal UI needs an interactive terminal")

type options struct {
	fs afero.Fs

	configPath  string
	watchConfig bool
	verbose     bool

	headless bool
	hz       int
	ticks    uint64
	keys     string
	snapshot string

	dump bool

	cfg    config.Config
	logger *zap.Logger
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "calc:", err)
		return 1
	}
	return 0
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{fs: afero.NewOsFs()})
}

func newRootCommand(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "calc",
		Short: "A pocket calculator",
		Long: `calc opens a calculator window with a keypad and two displays.

Type digits and + - * / on the keyboard or click the keys. Enter or = evaluates,
Esc clears, r takes the square root and s squares the current number.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if o.logger != nil {
				_ = o.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runWindow(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "path to a YAML config file")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "log at debug level")

	f := root.Flags()
	f.BoolVar(&o.watchConfig, "watch-config", false, "reload the theme when the config file changes")
	f.BoolVar(&o.headless, "headless", false, "run without a window")
	f.IntVar(&o.hz, "hz", 60, "tick rate in headless mode")
	f.Uint64Var(&o.ticks, "ticks", 0, "stop after N ticks in headless mode (0 = until the script ends, or forever)")
	f.StringVar(&o.keys, "keys", "", "key script typed in headless mode, e.g. \"12+3 enter\"")
	f.StringVar(&o.snapshot, "snapshot", "", "write a PNG of the final frame in headless mode")

	root.AddCommand(
		newTUICommand(o),
		newPressCommand(o),
		newVersionCommand(),
	)
	return root
}

func (o *options) setup() error {
	cfg, err := config.Load(o.fs, o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	logger, err := logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		Verbose:     o.verbose,
	})
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func (o *options) newApp(reload <-chan config.Config) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		return app.New(h, app.Config{
			Theme:  o.cfg.Theme.Screen(),
			Logger: o.logger,
			Reload: reload,
		})
	}
}

func (o *options) runWindow(ctx context.Context) error {
	var reload <-chan config.Config
	if o.watchConfig && o.configPath != "" {
		w, err := config.Watch(ctx, o.fs, o.configPath, o.logger)
		if err != nil {
			return err
		}
		defer w.Close()
		reload = w.Updates()
	}

	if o.headless {
		return o.runHeadless(ctx, reload)
	}

	win := o.cfg.Window
	o.logger.Info("opening window", zap.Int("width", win.Width), zap.Int("height", win.Height))
	return hal.RunWindow(hal.WindowConfig{
		Host:      win.Host(),
		Title:     win.Title,
		Scale:     win.Scale,
		TPS:       win.TPS,
		Resizable: win.Resizable,
	}, o.newApp(reload))
}

func (o *options) runHeadless(ctx context.Context, reload <-chan config.Config) error {
	keys, err := keypad.ParseSequence(o.keys)
	if err != nil {
		return err
	}
	script := make([]hal.KeyEvent, 0, len(keys))
	for _, k := range keys {
		script = append(script, hal.KeyEvent{Press: true, Rune: k.Rune()})
	}

	hc := hal.HeadlessConfig{
		Host:            o.cfg.Window.Host(),
		Hz:              o.hz,
		Ticks:           o.ticks,
		Script:          script,
		ExitAfterScript: o.ticks == 0,
	}
	if o.snapshot != "" {
		f, err := o.fs.Create(o.snapshot)
		if err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
		defer f.Close()
		hc.Snapshot = f
	}

	o.logger.Debug("running headless", zap.Int("hz", o.hz), zap.Uint64("ticks", o.ticks), zap.Int("keys", len(script)))
	return hal.RunHeadless(ctx, o.newApp(reload), hc)
}

func newTUICommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calculator in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if !isTerminal(in) {
				return ErrNotTerminal
			}
			m := tui.New(engine.New(), tui.WithLogger(o.logger), tui.WithTheme(o.cfg.Theme.Screen()))
			return tui.Run(cmd.Context(), m, in, cmd.OutOrStdout())
		},
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newPressCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "press <keys>...",
		Short: "Press keys and print both displays",
		Long: `press feeds a key script to a fresh calculator and prints what the two
displays show afterwards. Tokens are separated by spaces; sqrt, square, clear,
equals and enter press one key each, any other token presses one key per
character.`,
		Example: `  calc press 12+3 =
  calc press 9 sqrt
  calc press 5/0 enter`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := keypad.ParseSequence(strings.Join(args, " "))
			if err != nil {
				return err
			}

			// Track the total display the way a screen does: it only
			// changes when the engine reports FieldTotal.
			e := engine.New()
			var total string
			e.Observe(func(f engine.Field) {
				if f&engine.FieldTotal != 0 {
					total = e.Total()
				}
			})
			for _, k := range keys {
				keypad.Apply(e, k)
			}
			if err := e.Err(); err != nil {
				o.logger.Debug("evaluation failed", zap.Error(err))
			}

			out := cmd.OutOrStdout()
			if o.dump {
				spew.Fdump(out, e.State())
				return nil
			}
			fmt.Fprintf(out, "total:   %s\n", keypad.FormatTotal(total))
			fmt.Fprintf(out, "current: %s\n", e.Current())
			return nil
		},
	}
	cmd.Flags().BoolVar(&o.dump, "dump", false, "dump the full engine state")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// No config or logger needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
